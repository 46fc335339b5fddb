package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/tutoring-api/internal/service"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
	"github.com/edulane/tutoring-api/pkg/response"
)

type insightsService interface {
	ForStudent(ctx context.Context, studentID string) (*service.StudentInsights, error)
}

// InsightsHandler exposes advanced analytics endpoints. Without providers
// these respond 501 rather than inventing numbers.
type InsightsHandler struct {
	service insightsService
}

// NewInsightsHandler constructs the handler.
func NewInsightsHandler(service insightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// Student godoc
// @Summary Advanced insights for a student
// @Tags Insights
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 501 {object} response.Envelope
// @Router /students/{id}/insights [get]
func (h *InsightsHandler) Student(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	insights, err := h.service.ForStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, insights, nil)
}
