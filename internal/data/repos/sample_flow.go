package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

// SampleFlowRepo is append-only from the service's point of view: flow rows
// are written once and only removed when their parent sample is deleted.
type SampleFlowRepo interface {
	Create(ctx context.Context, tx *gorm.DB, flow *domain.PatientSampleFlow) error
	GetBySampleIDs(ctx context.Context, tx *gorm.DB, sampleIDs []int64) ([]*domain.PatientSampleFlow, error)
	DeleteBySampleID(ctx context.Context, tx *gorm.DB, sampleID int64) error
}

type sampleFlowRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSampleFlowRepo(db *gorm.DB, baseLog *logger.Logger) SampleFlowRepo {
	repoLog := baseLog.With("repo", "SampleFlowRepo")
	return &sampleFlowRepo{db: db, log: repoLog}
}

func (fr *sampleFlowRepo) Create(ctx context.Context, tx *gorm.DB, flow *domain.PatientSampleFlow) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Create(flow).Error
}

func (fr *sampleFlowRepo) GetBySampleIDs(ctx context.Context, tx *gorm.DB, sampleIDs []int64) ([]*domain.PatientSampleFlow, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*domain.PatientSampleFlow
	if len(sampleIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("sample_id IN ?", sampleIDs).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *sampleFlowRepo) DeleteBySampleID(ctx context.Context, tx *gorm.DB, sampleID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("sample_id = ?", sampleID).
		Delete(&domain.PatientSampleFlow{}).Error
}
