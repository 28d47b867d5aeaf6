package app

import (
	"gorm.io/gorm"

	"github.com/openmedix/facility-backend/internal/data/repos"
	"github.com/openmedix/facility-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Facility     repos.FacilityRepo
	Patient      repos.PatientRepo
	Consultation repos.ConsultationRepo
	Sample       repos.SampleRepo
	SampleFlow   repos.SampleFlowRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Facility:     repos.NewFacilityRepo(db, log),
		Patient:      repos.NewPatientRepo(db, log),
		Consultation: repos.NewConsultationRepo(db, log),
		Sample:       repos.NewSampleRepo(db, log),
		SampleFlow:   repos.NewSampleFlowRepo(db, log),
	}
}
