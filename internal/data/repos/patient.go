package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

type PatientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, patients []*domain.Patient) ([]*domain.Patient, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, patientIDs []int64) ([]*domain.Patient, error)
}

type patientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPatientRepo(db *gorm.DB, baseLog *logger.Logger) PatientRepo {
	repoLog := baseLog.With("repo", "PatientRepo")
	return &patientRepo{db: db, log: repoLog}
}

func (pr *patientRepo) Create(ctx context.Context, tx *gorm.DB, patients []*domain.Patient) ([]*domain.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(patients) == 0 {
		return []*domain.Patient{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (pr *patientRepo) GetByIDs(ctx context.Context, tx *gorm.DB, patientIDs []int64) ([]*domain.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*domain.Patient
	if len(patientIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", patientIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
