package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/data/repos"
	"github.com/openmedix/facility-backend/internal/data/repos/testutil"
	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/apierr"
)

type sampleServiceEnv struct {
	tx      *gorm.DB
	svc     SampleService
	flows   repos.SampleFlowRepo
	samples repos.SampleRepo

	creator *domain.User
	other   *domain.User

	patient      *domain.Patient
	consultation *domain.PatientConsultation // latest for patient
	older        *domain.PatientConsultation
	orphan       *domain.Patient // patient without consultations
}

func newSampleServiceEnv(t *testing.T) (context.Context, *sampleServiceEnv) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	env := &sampleServiceEnv{
		tx:      tx,
		flows:   repos.NewSampleFlowRepo(tx, log),
		samples: repos.NewSampleRepo(tx, log),
	}
	env.svc = NewSampleService(tx, log, env.samples, env.flows, repos.NewConsultationRepo(tx, log))

	env.creator = testutil.SeedUser(t, ctx, tx, "samplesvc-creator", domain.RoleStaff)
	env.other = testutil.SeedUser(t, ctx, tx, "samplesvc-other", domain.RoleStaff)

	state := testutil.SeedState(t, ctx, tx, "Punjab")
	district := testutil.SeedDistrict(t, ctx, tx, state.ID, "Ludhiana")
	facility := testutil.SeedFacility(t, ctx, tx, district, env.creator.ID, "Civil Hospital")

	env.patient = testutil.SeedPatient(t, ctx, tx, env.creator.ID, "patient with consultations")
	env.older = testutil.SeedConsultation(t, ctx, tx, env.patient.ID, facility.ID, env.creator.ID)
	env.consultation = testutil.SeedConsultation(t, ctx, tx, env.patient.ID, facility.ID, env.creator.ID)
	env.orphan = testutil.SeedPatient(t, ctx, tx, env.creator.ID, "patient without consultations")
	return ctx, env
}

func fieldMessages(t *testing.T, err error, field string) []string {
	t.Helper()
	var ve *apierr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msgs, ok := ve.Fields[field]
	if !ok {
		t.Fatalf("expected error keyed by %q, got %v", field, ve.Fields)
	}
	return msgs
}

func TestSampleServiceCreateWithPatientID(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	sample, err := env.svc.Create(ctx, env.creator, SampleCreateInput{
		PatientID:  &env.patient.ID,
		SampleType: "BA/ETA",
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Latest consultation wins when only a patient id is given.
	if sample.ConsultationID != env.consultation.ID {
		t.Fatalf("consultation id = %d, want latest %d", sample.ConsultationID, env.consultation.ID)
	}
	if sample.Status != domain.StatusRequestSubmitted {
		t.Fatalf("status = %s, want default %s", sample.Status, domain.StatusRequestSubmitted)
	}
	if sample.Result != domain.ResultAwaiting {
		t.Fatalf("result = %s, want default %s", sample.Result, domain.ResultAwaiting)
	}
	if sample.CreatedBy != env.creator.ID {
		t.Fatalf("created by = %d, want %d", sample.CreatedBy, env.creator.ID)
	}

	flows, err := env.flows.GetBySampleIDs(ctx, nil, []int64{sample.ID})
	if err != nil {
		t.Fatalf("GetBySampleIDs: %v", err)
	}
	if len(flows) != 1 {
		t.Fatalf("flows = %d, want exactly 1 per create", len(flows))
	}
	if flows[0].Status != sample.Status || flows[0].Notes != "create" {
		t.Fatalf("flow = {%s %q}, want {%s %q}", flows[0].Status, flows[0].Notes, sample.Status, "create")
	}
}

func TestSampleServiceCreateWithConsultationID(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	notes := "collected at ward 3"
	sample, err := env.svc.Create(ctx, env.creator, SampleCreateInput{
		ConsultationID: &env.older.ID,
		Notes:          &notes,
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sample.ConsultationID != env.older.ID {
		t.Fatalf("consultation id = %d, want %d", sample.ConsultationID, env.older.ID)
	}
	// Patient id is backfilled from the consultation.
	if sample.PatientID != env.patient.ID {
		t.Fatalf("patient id = %d, want %d", sample.PatientID, env.patient.ID)
	}

	flows, err := env.flows.GetBySampleIDs(ctx, nil, []int64{sample.ID})
	if err != nil {
		t.Fatalf("GetBySampleIDs: %v", err)
	}
	if len(flows) != 1 || flows[0].Notes != notes {
		t.Fatalf("flows = %v, want one entry with caller notes", flows)
	}
}

func TestSampleServiceCreateLinkageErrors(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	_, err := env.svc.Create(ctx, env.creator, SampleCreateInput{}, nil)
	msgs := fieldMessages(t, err, apierr.NonFieldErrors)
	if len(msgs) != 1 || msgs[0] != "Either of patient_id or consultation_id is required" {
		t.Fatalf("messages = %v", msgs)
	}

	_, err = env.svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.orphan.ID}, nil)
	msgs = fieldMessages(t, err, "patient_id")
	if len(msgs) != 1 || msgs[0] != "Invalid id/ No consultation done" {
		t.Fatalf("messages = %v", msgs)
	}

	missing := env.consultation.ID + 100000
	_, err = env.svc.Create(ctx, env.creator, SampleCreateInput{ConsultationID: &missing}, nil)
	msgs = fieldMessages(t, err, "consultation_id")
	if len(msgs) != 1 || msgs[0] != "Invalid id" {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestSampleServiceCreateRejectsBadEnums(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	bad := domain.SampleStatus("SHIPPED")
	_, err := env.svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.patient.ID, Status: &bad}, nil)
	msgs := fieldMessages(t, err, "status")
	if len(msgs) != 1 || msgs[0] != "Select a valid choice. SHIPPED is not one of the available choices." {
		t.Fatalf("messages = %v", msgs)
	}

	badResult := domain.SampleResult("MAYBE")
	_, err = env.svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.patient.ID, Result: &badResult}, nil)
	msgs = fieldMessages(t, err, "result")
	if len(msgs) != 1 || msgs[0] != "Select a valid choice. MAYBE is not one of the available choices." {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestSampleServiceCreatePatientOverride(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	// The nested patient route wins over whatever the payload carries.
	sample, err := env.svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.orphan.ID}, &env.patient.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sample.PatientID != env.patient.ID {
		t.Fatalf("patient id = %d, want override %d", sample.PatientID, env.patient.ID)
	}
}

func TestSampleServiceUpdate(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	sample, err := env.svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.patient.ID}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := domain.StatusApproved
	updated, err := env.svc.Update(ctx, env.creator, sample.ID, SampleUpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.StatusApproved {
		t.Fatalf("status = %s, want %s", updated.Status, domain.StatusApproved)
	}

	flows, err := env.flows.GetBySampleIDs(ctx, nil, []int64{sample.ID})
	if err != nil {
		t.Fatalf("GetBySampleIDs: %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("flows = %d, want create + update", len(flows))
	}
	// Newest first: the update flow records the post-update status and a note
	// naming the actor.
	if flows[0].Status != domain.StatusApproved {
		t.Fatalf("update flow status = %s, want %s", flows[0].Status, domain.StatusApproved)
	}
	if flows[0].Notes != "updated by samplesvc-creator" {
		t.Fatalf("update flow notes = %q", flows[0].Notes)
	}
}

func TestSampleServiceUpdateOutOfScope(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	sample, err := env.svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.patient.ID}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := domain.StatusDenied
	_, err = env.svc.Update(ctx, env.other, sample.ID, SampleUpdateInput{Status: &status})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for out-of-scope update, got %v", err)
	}
}

func TestSampleServiceDelete(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	sample, err := env.svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.patient.ID}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Invisible samples cannot be deleted.
	err = env.svc.Delete(ctx, env.other, sample.ID)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for out-of-scope delete, got %v", err)
	}

	if err := env.svc.Delete(ctx, env.creator, sample.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = env.svc.Get(ctx, env.creator, sample.ID)
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %v", err)
	}

	flows, err := env.flows.GetBySampleIDs(ctx, nil, []int64{sample.ID})
	if err != nil {
		t.Fatalf("GetBySampleIDs: %v", err)
	}
	if len(flows) != 0 {
		t.Fatalf("flows = %d, want 0 after delete", len(flows))
	}
}

var errFlowWrite = errors.New("flow write failed")

// failingFlowRepo rejects every flow insert; reads and deletes pass through.
type failingFlowRepo struct {
	repos.SampleFlowRepo
}

func (f *failingFlowRepo) Create(ctx context.Context, tx *gorm.DB, flow *domain.PatientSampleFlow) error {
	return errFlowWrite
}

func TestSampleServiceCreateRollsBackOnFlowFailure(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)
	log := testutil.Logger(t)

	svc := NewSampleService(env.tx, log, env.samples,
		&failingFlowRepo{SampleFlowRepo: env.flows},
		repos.NewConsultationRepo(env.tx, log))

	_, err := svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.patient.ID}, nil)
	if !errors.Is(err, errFlowWrite) {
		t.Fatalf("err = %v, want flow write failure", err)
	}

	// The sample write must not survive the failed flow write.
	var count int64
	if err := env.tx.Model(&domain.PatientSample{}).Count(&count).Error; err != nil {
		t.Fatalf("count samples: %v", err)
	}
	if count != 0 {
		t.Fatalf("sample rows = %d, want 0 after rolled-back create", count)
	}
}

func TestSampleServiceUpdateRollsBackOnFlowFailure(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)
	log := testutil.Logger(t)

	sample, err := env.svc.Create(ctx, env.creator, SampleCreateInput{PatientID: &env.patient.ID}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc := NewSampleService(env.tx, log, env.samples,
		&failingFlowRepo{SampleFlowRepo: env.flows},
		repos.NewConsultationRepo(env.tx, log))

	status := domain.StatusApproved
	_, err = svc.Update(ctx, env.creator, sample.ID, SampleUpdateInput{Status: &status})
	if !errors.Is(err, errFlowWrite) {
		t.Fatalf("err = %v, want flow write failure", err)
	}

	// Status change and flow entry must both be gone.
	got, err := env.svc.Get(ctx, env.creator, sample.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusRequestSubmitted {
		t.Fatalf("status = %s, want %s after rolled-back update", got.Status, domain.StatusRequestSubmitted)
	}
	if len(got.Flows) != 1 {
		t.Fatalf("flows = %d, want only the create entry", len(got.Flows))
	}
}

func TestSampleServiceListValidatesEnums(t *testing.T) {
	ctx, env := newSampleServiceEnv(t)

	_, err := env.svc.List(ctx, env.creator, SampleListInput{Status: "SHIPPED"})
	msgs := fieldMessages(t, err, "status")
	if len(msgs) != 1 {
		t.Fatalf("messages = %v", msgs)
	}

	_, err = env.svc.List(ctx, env.creator, SampleListInput{Result: "MAYBE"})
	if msgs = fieldMessages(t, err, "result"); len(msgs) != 1 {
		t.Fatalf("messages = %v", msgs)
	}
}
