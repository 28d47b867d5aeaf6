package domain

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID uuid.UUID `gorm:"uniqueIndex;not null;column:external_id" json:"external_id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	FacilityID *int64    `gorm:"index;column:facility_id" json:"facility_id"`
	CreatedBy  int64     `gorm:"not null;column:created_by" json:"created_by"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patient"
}

// PatientConsultation links a patient to facility context. Sample linkage
// resolution treats the row with the highest id as the current consultation.
type PatientConsultation struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID  int64     `gorm:"not null;index;column:patient_id" json:"patient_id"`
	FacilityID int64     `gorm:"not null;index;column:facility_id" json:"facility_id"`
	CreatedBy  int64     `gorm:"not null;column:created_by" json:"created_by"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (PatientConsultation) TableName() string {
	return "patient_consultation"
}
