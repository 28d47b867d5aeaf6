package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

type ConsultationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, consultations []*domain.PatientConsultation) ([]*domain.PatientConsultation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.PatientConsultation, error)
	// LatestByPatientID returns the consultation with the highest id for the
	// patient, or nil when the patient has none.
	LatestByPatientID(ctx context.Context, tx *gorm.DB, patientID int64) (*domain.PatientConsultation, error)
}

type consultationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConsultationRepo(db *gorm.DB, baseLog *logger.Logger) ConsultationRepo {
	repoLog := baseLog.With("repo", "ConsultationRepo")
	return &consultationRepo{db: db, log: repoLog}
}

func (cr *consultationRepo) Create(ctx context.Context, tx *gorm.DB, consultations []*domain.PatientConsultation) ([]*domain.PatientConsultation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(consultations) == 0 {
		return []*domain.PatientConsultation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&consultations).Error; err != nil {
		return nil, err
	}
	return consultations, nil
}

func (cr *consultationRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.PatientConsultation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*domain.PatientConsultation
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (cr *consultationRepo) LatestByPatientID(ctx context.Context, tx *gorm.DB, patientID int64) (*domain.PatientConsultation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*domain.PatientConsultation
	if err := transaction.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("id DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
