package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmedix/facility-backend/internal/domain"
	"github.com/openmedix/facility-backend/internal/platform/apierr"
	"github.com/openmedix/facility-backend/internal/requestdata"
)

// renderError maps service errors onto HTTP responses. Validation errors keep
// their field-keyed shape; apierr carries its own status; anything else is a 500.
func renderError(c *gin.Context, err error) {
	var ve *apierr.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ve.Fields)
		return
	}

	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Status != 0 {
		c.JSON(ae.Status, gin.H{"error": gin.H{"code": ae.Code, "message": ae.Error()}})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": "internal_error", "message": err.Error()},
	})
}

func currentActor(c *gin.Context) (*domain.User, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.User == nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": gin.H{"message": "forbidden", "code": "forbidden"},
		})
		return nil, false
	}
	return rd.User, true
}
