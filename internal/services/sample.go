package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/data/repos"
	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/apierr"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

const defaultCreateNote = "create"

type SampleListInput struct {
	PatientID    *int64
	District     *int64
	DistrictName string
	Status       string
	Result       string
}

type SampleCreateInput struct {
	PatientID      *int64
	ConsultationID *int64
	SampleType     string
	Status         *domain.SampleStatus
	Result         *domain.SampleResult
	Metadata       datatypes.JSON
	Notes          *string
}

type SampleUpdateInput struct {
	Status *domain.SampleStatus
	Result *domain.SampleResult
	Notes  *string
}

type SampleService interface {
	List(ctx context.Context, actor *domain.User, in SampleListInput) ([]*domain.PatientSample, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.PatientSample, error)
	// Create validates sample linkage, resolves the consultation and writes
	// the sample plus one flow entry in a single transaction. A non-nil
	// patientOverride (nested patient route) replaces the payload patient id.
	Create(ctx context.Context, actor *domain.User, in SampleCreateInput, patientOverride *int64) (*domain.PatientSample, error)
	Update(ctx context.Context, actor *domain.User, id int64, in SampleUpdateInput) (*domain.PatientSample, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type sampleService struct {
	db            *gorm.DB
	log           *logger.Logger
	samples       repos.SampleRepo
	flows         repos.SampleFlowRepo
	consultations repos.ConsultationRepo
}

func NewSampleService(db *gorm.DB, log *logger.Logger, samples repos.SampleRepo, flows repos.SampleFlowRepo, consultations repos.ConsultationRepo) SampleService {
	serviceLog := log.With("service", "SampleService")
	return &sampleService{
		db:            db,
		log:           serviceLog,
		samples:       samples,
		flows:         flows,
		consultations: consultations,
	}
}

func invalidChoice(field, value string) *apierr.ValidationError {
	return apierr.NewValidation(field, fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", value))
}

func (ss *sampleService) List(ctx context.Context, actor *domain.User, in SampleListInput) ([]*domain.PatientSample, error) {
	if actor == nil {
		return nil, fmt.Errorf("actor required")
	}

	filter := repos.SampleListFilter{
		PatientID:    in.PatientID,
		DistrictID:   in.District,
		DistrictName: in.DistrictName,
	}
	if in.Status != "" {
		status := domain.SampleStatus(in.Status)
		if !status.Valid() {
			return nil, invalidChoice("status", in.Status)
		}
		filter.Status = &status
	}
	if in.Result != "" {
		result := domain.SampleResult(in.Result)
		if !result.Valid() {
			return nil, invalidChoice("result", in.Result)
		}
		filter.Result = &result
	}

	return ss.samples.List(ctx, nil, domain.SampleVisibilityFor(actor), filter)
}

func (ss *sampleService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.PatientSample, error) {
	if actor == nil {
		return nil, fmt.Errorf("actor required")
	}
	sample, err := ss.samples.GetByID(ctx, nil, id, domain.SampleVisibilityFor(actor))
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, apierr.NotFound("sample_not_found")
	}
	return sample, nil
}

// resolveConsultation applies the linkage rules: an explicit consultation id
// must exist; otherwise the patient's consultation with the highest id is
// used (latest wins when a patient has several).
func (ss *sampleService) resolveConsultation(ctx context.Context, in SampleCreateInput) (*domain.PatientConsultation, error) {
	if in.ConsultationID == nil {
		consultation, err := ss.consultations.LatestByPatientID(ctx, nil, *in.PatientID)
		if err != nil {
			return nil, err
		}
		if consultation == nil {
			return nil, apierr.NewValidation("patient_id", "Invalid id/ No consultation done")
		}
		return consultation, nil
	}

	consultation, err := ss.consultations.GetByID(ctx, nil, *in.ConsultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, apierr.NewValidation("consultation_id", "Invalid id")
	}
	return consultation, nil
}

func (ss *sampleService) Create(ctx context.Context, actor *domain.User, in SampleCreateInput, patientOverride *int64) (*domain.PatientSample, error) {
	if actor == nil {
		return nil, fmt.Errorf("actor required")
	}
	if patientOverride != nil {
		in.PatientID = patientOverride
	}

	note := defaultCreateNote
	if in.Notes != nil {
		note = *in.Notes
	}

	if in.PatientID == nil && in.ConsultationID == nil {
		return nil, apierr.NewValidation(apierr.NonFieldErrors, "Either of patient_id or consultation_id is required")
	}

	status := domain.StatusRequestSubmitted
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalidChoice("status", string(*in.Status))
		}
		status = *in.Status
	}
	result := domain.ResultAwaiting
	if in.Result != nil {
		if !in.Result.Valid() {
			return nil, invalidChoice("result", string(*in.Result))
		}
		result = *in.Result
	}

	consultation, err := ss.resolveConsultation(ctx, in)
	if err != nil {
		return nil, err
	}

	patientID := consultation.PatientID
	if in.PatientID != nil {
		patientID = *in.PatientID
	}

	sample := &domain.PatientSample{
		ExternalID:     uuid.New(),
		PatientID:      patientID,
		ConsultationID: consultation.ID,
		SampleType:     in.SampleType,
		Status:         status,
		Result:         result,
		Metadata:       in.Metadata,
		CreatedBy:      actor.ID,
	}

	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.samples.Create(ctx, tx, sample); err != nil {
			return err
		}
		flow := &domain.PatientSampleFlow{
			SampleID:  sample.ID,
			Status:    sample.Status,
			Notes:     note,
			CreatedBy: actor.ID,
		}
		return ss.flows.Create(ctx, tx, flow)
	})
	if err != nil {
		return nil, err
	}

	ss.log.Info("Sample created", "sample_id", sample.ID, "consultation_id", sample.ConsultationID, "created_by", actor.ID)
	return sample, nil
}

func (ss *sampleService) Update(ctx context.Context, actor *domain.User, id int64, in SampleUpdateInput) (*domain.PatientSample, error) {
	if actor == nil {
		return nil, fmt.Errorf("actor required")
	}

	vis := domain.SampleVisibilityFor(actor)
	sample, err := ss.samples.GetByID(ctx, nil, id, vis)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, apierr.NotFound("sample_not_found")
	}

	values := map[string]interface{}{}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalidChoice("status", string(*in.Status))
		}
		values["status"] = *in.Status
		sample.Status = *in.Status
	}
	if in.Result != nil {
		if !in.Result.Valid() {
			return nil, invalidChoice("result", string(*in.Result))
		}
		values["result"] = *in.Result
		sample.Result = *in.Result
	}

	note := fmt.Sprintf("updated by %s", actor.Username)
	if in.Notes != nil {
		note = *in.Notes
	}

	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.samples.Updates(ctx, tx, sample.ID, values); err != nil {
			return err
		}
		flow := &domain.PatientSampleFlow{
			SampleID:  sample.ID,
			Status:    sample.Status,
			Notes:     note,
			CreatedBy: actor.ID,
		}
		return ss.flows.Create(ctx, tx, flow)
	})
	if err != nil {
		return nil, err
	}

	updated, err := ss.samples.GetByID(ctx, nil, sample.ID, vis)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return sample, nil
	}
	return updated, nil
}

func (ss *sampleService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if actor == nil {
		return fmt.Errorf("actor required")
	}

	sample, err := ss.samples.GetByID(ctx, nil, id, domain.SampleVisibilityFor(actor))
	if err != nil {
		return err
	}
	if sample == nil {
		return apierr.NotFound("sample_not_found")
	}

	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.flows.DeleteBySampleID(ctx, tx, sample.ID); err != nil {
			return err
		}
		return ss.samples.Delete(ctx, tx, sample.ID)
	})
}
