package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

// SampleListFilter holds the optional list-query filters. Enum fields are
// validated by the service layer before they reach the repo.
type SampleListFilter struct {
	PatientID    *int64
	DistrictID   *int64
	DistrictName string
	Status       *domain.SampleStatus
	Result       *domain.SampleResult
}

type SampleRepo interface {
	List(ctx context.Context, tx *gorm.DB, vis domain.SampleVisibility, filter SampleListFilter) ([]*domain.PatientSample, error)
	// GetByID fetches one sample with its flow entries, restricted by the
	// visibility predicate. Returns nil when absent or out of scope.
	GetByID(ctx context.Context, tx *gorm.DB, id int64, vis domain.SampleVisibility) (*domain.PatientSample, error)
	Create(ctx context.Context, tx *gorm.DB, sample *domain.PatientSample) error
	Updates(ctx context.Context, tx *gorm.DB, id int64, values map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
}

type sampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSampleRepo(db *gorm.DB, baseLog *logger.Logger) SampleRepo {
	repoLog := baseLog.With("repo", "SampleRepo")
	return &sampleRepo{db: db, log: repoLog}
}

func (sr *sampleRepo) scoped(ctx context.Context, tx *gorm.DB, vis domain.SampleVisibility) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	q := transaction.WithContext(ctx).
		Model(&domain.PatientSample{}).
		Select("patient_sample.*").
		Joins("JOIN patient_consultation ON patient_consultation.id = patient_sample.consultation_id").
		Joins("JOIN facility ON facility.id = patient_consultation.facility_id").
		Joins("JOIN district ON district.id = facility.district_id")

	if !vis.Unrestricted {
		cond := transaction.Where("facility.created_by = ?", vis.CreatorUserID)
		if vis.StateID != nil {
			cond = cond.Or("facility.state_id = ?", *vis.StateID)
		} else if vis.DistrictID != nil {
			cond = cond.Or("facility.district_id = ?", *vis.DistrictID)
		}
		q = q.Where(cond)
	}
	return q
}

func (sr *sampleRepo) List(ctx context.Context, tx *gorm.DB, vis domain.SampleVisibility, filter SampleListFilter) ([]*domain.PatientSample, error) {
	q := sr.scoped(ctx, tx, vis)

	if filter.PatientID != nil {
		q = q.Where("patient_sample.patient_id = ?", *filter.PatientID)
	}
	if filter.DistrictID != nil {
		q = q.Where("facility.district_id = ?", *filter.DistrictID)
	}
	if name := strings.TrimSpace(filter.DistrictName); name != "" {
		q = q.Where("LOWER(district.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filter.Status != nil {
		q = q.Where("patient_sample.status = ?", *filter.Status)
	}
	if filter.Result != nil {
		q = q.Where("patient_sample.result = ?", *filter.Result)
	}

	var results []*domain.PatientSample
	if err := q.
		Preload("Flows", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Order("patient_sample.id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sampleRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64, vis domain.SampleVisibility) (*domain.PatientSample, error) {
	var results []*domain.PatientSample
	if err := sr.scoped(ctx, tx, vis).
		Where("patient_sample.id = ?", id).
		Preload("Flows", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (sr *sampleRepo) Create(ctx context.Context, tx *gorm.DB, sample *domain.PatientSample) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Create(sample).Error
}

func (sr *sampleRepo) Updates(ctx context.Context, tx *gorm.DB, id int64, values map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(values) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.PatientSample{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (sr *sampleRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.PatientSample{}).Error
}
