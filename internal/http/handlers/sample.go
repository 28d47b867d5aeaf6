package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/apierr"
	"github.com/openmedix/facility-backend/internal/platform/logger"
	"github.com/openmedix/facility-backend/internal/services"
)

type SampleHandler struct {
	log           *logger.Logger
	sampleService services.SampleService
}

func NewSampleHandler(log *logger.Logger, sampleService services.SampleService) *SampleHandler {
	handlerLog := log.With("handler", "SampleHandler")
	return &SampleHandler{log: handlerLog, sampleService: sampleService}
}

type SampleCreateRequest struct {
	PatientID      *int64         `json:"patient_id"`
	ConsultationID *int64         `json:"consultation_id"`
	SampleType     string         `json:"sample_type"`
	Status         *string        `json:"status"`
	Result         *string        `json:"result"`
	Metadata       datatypes.JSON `json:"metadata"`
	Notes          *string        `json:"notes"`
}

// SamplePatchRequest is the restricted partial-update projection: linkage is
// immutable once a sample exists.
type SamplePatchRequest struct {
	Status *string `json:"status"`
	Result *string `json:"result"`
	Notes  *string `json:"notes"`
}

// patientScope reads the optional nested-route patient id. A malformed path
// id aborts with a field-keyed 400.
func patientScope(c *gin.Context) (*int64, bool) {
	raw := c.Param("patient_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		renderError(c, apierr.NewValidation("patient_id", "Invalid id"))
		return nil, false
	}
	return &id, true
}

func sampleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apierr.NotFound("sample_not_found"))
		return 0, false
	}
	return id, true
}

// GET /samples
// GET /patients/:patient_id/samples
// Query filters: district, district_name, status, result.
func (sh *SampleHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	patientID, ok := patientScope(c)
	if !ok {
		return
	}

	in := services.SampleListInput{
		PatientID:    patientID,
		DistrictName: c.Query("district_name"),
		Status:       c.Query("status"),
		Result:       c.Query("result"),
	}
	if raw := c.Query("district"); raw != "" {
		district, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			renderError(c, apierr.NewValidation("district", "Enter a number."))
			return
		}
		in.District = &district
	}

	samples, err := sh.sampleService.List(c.Request.Context(), actor, in)
	if err != nil {
		renderError(c, err)
		return
	}

	results := make([]SampleReadView, 0, len(samples))
	for _, s := range samples {
		results = append(results, NewSampleReadView(s))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

// GET /samples/:id
func (sh *SampleHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := sampleID(c)
	if !ok {
		return
	}

	sample, err := sh.sampleService.Get(c.Request.Context(), actor, id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSampleReadView(sample))
}

// POST /samples
// POST /patients/:patient_id/samples (path patient id overrides the payload)
func (sh *SampleHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	patientOverride, ok := patientScope(c)
	if !ok {
		return
	}

	var req SampleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}

	in := services.SampleCreateInput{
		PatientID:      req.PatientID,
		ConsultationID: req.ConsultationID,
		SampleType:     req.SampleType,
		Metadata:       req.Metadata,
		Notes:          req.Notes,
	}
	if req.Status != nil {
		status := domain.SampleStatus(*req.Status)
		in.Status = &status
	}
	if req.Result != nil {
		result := domain.SampleResult(*req.Result)
		in.Result = &result
	}

	sample, err := sh.sampleService.Create(c.Request.Context(), actor, in, patientOverride)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewSampleView(sample))
}

// PATCH /samples/:id
func (sh *SampleHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := sampleID(c)
	if !ok {
		return
	}

	var req SamplePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}

	in := services.SampleUpdateInput{Notes: req.Notes}
	if req.Status != nil {
		status := domain.SampleStatus(*req.Status)
		in.Status = &status
	}
	if req.Result != nil {
		result := domain.SampleResult(*req.Result)
		in.Result = &result
	}

	sample, err := sh.sampleService.Update(c.Request.Context(), actor, id, in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSampleView(sample))
}

// DELETE /samples/:id
func (sh *SampleHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := sampleID(c)
	if !ok {
		return
	}

	if err := sh.sampleService.Delete(c.Request.Context(), actor, id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
