package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

type FacilityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, facilities []*domain.Facility) ([]*domain.Facility, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, facilityIDs []int64) ([]*domain.Facility, error)
}

type facilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFacilityRepo(db *gorm.DB, baseLog *logger.Logger) FacilityRepo {
	repoLog := baseLog.With("repo", "FacilityRepo")
	return &facilityRepo{db: db, log: repoLog}
}

func (fr *facilityRepo) Create(ctx context.Context, tx *gorm.DB, facilities []*domain.Facility) ([]*domain.Facility, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(facilities) == 0 {
		return []*domain.Facility{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&facilities).Error; err != nil {
		return nil, err
	}
	return facilities, nil
}

func (fr *facilityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, facilityIDs []int64) ([]*domain.Facility, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*domain.Facility
	if len(facilityIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", facilityIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
