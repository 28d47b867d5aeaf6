package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SampleStatus is the testing-workflow state a sample moves through.
type SampleStatus string

const (
	StatusRequestSubmitted       SampleStatus = "REQUEST_SUBMITTED"
	StatusApproved               SampleStatus = "APPROVED"
	StatusDenied                 SampleStatus = "DENIED"
	StatusSentToCollectionCentre SampleStatus = "SENT_TO_COLLECTION_CENTRE"
	StatusReceivedAndForwarded   SampleStatus = "RECEIVED_AND_FORWARDED"
	StatusReceivedAtLab          SampleStatus = "RECEIVED_AT_LAB"
	StatusCompleted              SampleStatus = "COMPLETED"
)

var sampleStatuses = map[SampleStatus]struct{}{
	StatusRequestSubmitted:       {},
	StatusApproved:               {},
	StatusDenied:                 {},
	StatusSentToCollectionCentre: {},
	StatusReceivedAndForwarded:   {},
	StatusReceivedAtLab:          {},
	StatusCompleted:              {},
}

func (s SampleStatus) Valid() bool {
	_, ok := sampleStatuses[s]
	return ok
}

// SampleResult is the outcome recorded once testing completes.
type SampleResult string

const (
	ResultPositive SampleResult = "POSITIVE"
	ResultNegative SampleResult = "NEGATIVE"
	ResultAwaiting SampleResult = "AWAITING"
	ResultInvalid  SampleResult = "INVALID"
)

var sampleResults = map[SampleResult]struct{}{
	ResultPositive: {},
	ResultNegative: {},
	ResultAwaiting: {},
	ResultInvalid:  {},
}

func (r SampleResult) Valid() bool {
	_, ok := sampleResults[r]
	return ok
}

type PatientSample struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID     uuid.UUID      `gorm:"uniqueIndex;not null;column:external_id" json:"external_id"`
	PatientID      int64          `gorm:"not null;index;column:patient_id" json:"patient_id"`
	ConsultationID int64          `gorm:"not null;index;column:consultation_id" json:"consultation_id"`
	SampleType     string         `gorm:"column:sample_type" json:"sample_type"`
	Status         SampleStatus   `gorm:"not null;column:status" json:"status"`
	Result         SampleResult   `gorm:"not null;column:result" json:"result"`
	Metadata       datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedBy      int64          `gorm:"not null;column:created_by" json:"created_by"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`

	Flows []PatientSampleFlow `gorm:"foreignKey:SampleID" json:"-"`
}

func (PatientSample) TableName() string {
	return "patient_sample"
}

// PatientSampleFlow is an append-only audit row. Exactly one is written per
// successful sample create or update; rows are never mutated afterwards.
type PatientSampleFlow struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	SampleID  int64        `gorm:"not null;index;column:sample_id" json:"sample_id"`
	Status    SampleStatus `gorm:"not null;column:status" json:"status"`
	Notes     string       `gorm:"column:notes" json:"notes"`
	CreatedBy int64        `gorm:"not null;column:created_by" json:"created_by"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (PatientSampleFlow) TableName() string {
	return "patient_sample_flow"
}
