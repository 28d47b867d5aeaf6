package repos

import (
	"context"
	"testing"

	"github.com/openmedix/facility-backend/internal/data/repos/testutil"
	"github.com/openmedix/facility-backend/internal/domain"
)

func TestConsultationRepoLatestByPatientID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewConsultationRepo(db, testutil.Logger(t))

	admin := testutil.SeedUser(t, ctx, tx, "consultrepo-admin", domain.RoleStaff)
	state := testutil.SeedState(t, ctx, tx, "Kerala")
	district := testutil.SeedDistrict(t, ctx, tx, state.ID, "Ernakulam")
	facility := testutil.SeedFacility(t, ctx, tx, district, admin.ID, "General Hospital")
	patient := testutil.SeedPatient(t, ctx, tx, admin.ID, "patient one")

	first := testutil.SeedConsultation(t, ctx, tx, patient.ID, facility.ID, admin.ID)
	second := testutil.SeedConsultation(t, ctx, tx, patient.ID, facility.ID, admin.ID)

	latest, err := repo.LatestByPatientID(ctx, tx, patient.ID)
	if err != nil {
		t.Fatalf("LatestByPatientID: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("latest = %+v, want id %d", latest, second.ID)
	}
	if latest.ID <= first.ID {
		t.Fatalf("latest id %d should exceed first id %d", latest.ID, first.ID)
	}

	other := testutil.SeedPatient(t, ctx, tx, admin.ID, "patient two")
	none, err := repo.LatestByPatientID(ctx, tx, other.ID)
	if err != nil {
		t.Fatalf("LatestByPatientID (no rows): %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for patient without consultations, got %+v", none)
	}
}

func TestConsultationRepoGetByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewConsultationRepo(db, testutil.Logger(t))

	admin := testutil.SeedUser(t, ctx, tx, "consultrepo-getbyid", domain.RoleStaff)
	state := testutil.SeedState(t, ctx, tx, "Tamil Nadu")
	district := testutil.SeedDistrict(t, ctx, tx, state.ID, "Chennai")
	facility := testutil.SeedFacility(t, ctx, tx, district, admin.ID, "City Clinic")
	patient := testutil.SeedPatient(t, ctx, tx, admin.ID, "patient three")
	c := testutil.SeedConsultation(t, ctx, tx, patient.ID, facility.ID, admin.ID)

	got, err := repo.GetByID(ctx, tx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != c.ID {
		t.Fatalf("got = %+v, want id %d", got, c.ID)
	}

	missing, err := repo.GetByID(ctx, tx, c.ID+100000)
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown id, got %+v", missing)
	}
}
