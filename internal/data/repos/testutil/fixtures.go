package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/domain"
)

func SeedState(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.State {
	tb.Helper()
	s := &domain.State{Name: name}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed state: %v", err)
	}
	return s
}

func SeedDistrict(tb testing.TB, ctx context.Context, tx *gorm.DB, stateID int64, name string) *domain.District {
	tb.Helper()
	d := &domain.District{StateID: stateID, Name: name}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed district: %v", err)
	}
	return d
}

func SeedFacility(tb testing.TB, ctx context.Context, tx *gorm.DB, district *domain.District, createdBy int64, name string) *domain.Facility {
	tb.Helper()
	f := &domain.Facility{
		Name:       name,
		DistrictID: district.ID,
		StateID:    district.StateID,
		CreatedBy:  createdBy,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed facility: %v", err)
	}
	return f
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string, role domain.Role) *domain.User {
	tb.Helper()
	u := &domain.User{Username: username, Role: role}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedScopedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string, role domain.Role, districtID, stateID *int64) *domain.User {
	tb.Helper()
	u := &domain.User{Username: username, Role: role, DistrictID: districtID, StateID: stateID}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed scoped user: %v", err)
	}
	return u
}

func SeedSuperuser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *domain.User {
	tb.Helper()
	u := &domain.User{Username: username, Role: domain.RoleStateAdmin, Superuser: true}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed superuser: %v", err)
	}
	return u
}

func SeedPatient(tb testing.TB, ctx context.Context, tx *gorm.DB, createdBy int64, name string) *domain.Patient {
	tb.Helper()
	p := &domain.Patient{ExternalID: uuid.New(), Name: name, CreatedBy: createdBy}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed patient: %v", err)
	}
	return p
}

func SeedConsultation(tb testing.TB, ctx context.Context, tx *gorm.DB, patientID, facilityID, createdBy int64) *domain.PatientConsultation {
	tb.Helper()
	c := &domain.PatientConsultation{PatientID: patientID, FacilityID: facilityID, CreatedBy: createdBy}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed consultation: %v", err)
	}
	return c
}

func SeedSample(tb testing.TB, ctx context.Context, tx *gorm.DB, patientID, consultationID, createdBy int64, status domain.SampleStatus) *domain.PatientSample {
	tb.Helper()
	s := &domain.PatientSample{
		ExternalID:     uuid.New(),
		PatientID:      patientID,
		ConsultationID: consultationID,
		Status:         status,
		Result:         domain.ResultAwaiting,
		CreatedBy:      createdBy,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed sample: %v", err)
	}
	return s
}

func PtrInt64(v int64) *int64 { return &v }
