package handlers

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/openmedix/facility-backend/internal/domain"
)

// SampleView is the projection returned from create and partial-update
// responses. The read projection additionally embeds the flow history.
type SampleView struct {
	ID             int64               `json:"id"`
	ExternalID     uuid.UUID           `json:"external_id"`
	PatientID      int64               `json:"patient_id"`
	ConsultationID int64               `json:"consultation_id"`
	SampleType     string              `json:"sample_type"`
	Status         domain.SampleStatus `json:"status"`
	Result         domain.SampleResult `json:"result"`
	Metadata       datatypes.JSON      `json:"metadata,omitempty"`
	CreatedBy      int64               `json:"created_by"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type SampleFlowView struct {
	ID        int64               `json:"id"`
	Status    domain.SampleStatus `json:"status"`
	Notes     string              `json:"notes"`
	CreatedBy int64               `json:"created_by"`
	CreatedAt time.Time           `json:"created_at"`
}

type SampleReadView struct {
	SampleView
	Flow []SampleFlowView `json:"flow"`
}

func NewSampleView(s *domain.PatientSample) SampleView {
	return SampleView{
		ID:             s.ID,
		ExternalID:     s.ExternalID,
		PatientID:      s.PatientID,
		ConsultationID: s.ConsultationID,
		SampleType:     s.SampleType,
		Status:         s.Status,
		Result:         s.Result,
		Metadata:       s.Metadata,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func NewSampleReadView(s *domain.PatientSample) SampleReadView {
	view := SampleReadView{
		SampleView: NewSampleView(s),
		Flow:       make([]SampleFlowView, 0, len(s.Flows)),
	}
	for _, f := range s.Flows {
		view.Flow = append(view.Flow, SampleFlowView{
			ID:        f.ID,
			Status:    f.Status,
			Notes:     f.Notes,
			CreatedBy: f.CreatedBy,
			CreatedAt: f.CreatedAt,
		})
	}
	return view
}
