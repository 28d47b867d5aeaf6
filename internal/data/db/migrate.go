package db

import (
	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + org scope
		&domain.User{},
		&domain.State{},
		&domain.District{},
		&domain.Facility{},

		// Clinical records
		&domain.Patient{},
		&domain.PatientConsultation{},

		// Sample tracking
		&domain.PatientSample{},
		&domain.PatientSampleFlow{},
	)
}
