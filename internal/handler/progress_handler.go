package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edulane/tutoring-api/internal/dto"
	"github.com/edulane/tutoring-api/internal/middleware"
	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/internal/progress"
	"github.com/edulane/tutoring-api/internal/service"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
	"github.com/edulane/tutoring-api/pkg/response"
)

type progressService interface {
	StudentProgress(ctx context.Context, query service.ProgressQuery, requester *models.JWTClaims) (*dto.StudentProgressResponse, bool, error)
}

// ProgressHandler wires the progress service to HTTP endpoints.
type ProgressHandler struct {
	service progressService
}

// NewProgressHandler constructs the handler.
func NewProgressHandler(service progressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// StudentProgress godoc
// @Summary Student progress report
// @Tags Progress
// @Produce json
// @Param id path string true "Student ID"
// @Param range query string false "Range preset: last_month, last_3_months, last_6_months, last_year, custom"
// @Param from query string false "Custom range start (YYYY-MM-DD)"
// @Param to query string false "Custom range end (YYYY-MM-DD)"
// @Param subjectId query string false "Restrict to one subject"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/progress [get]
func (h *ProgressHandler) StudentProgress(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	query := service.ProgressQuery{
		StudentID: strings.TrimSpace(c.Param("id")),
		Preset:    progress.RangePreset(strings.TrimSpace(c.Query("range"))),
		SubjectID: strings.TrimSpace(c.Query("subjectId")),
	}
	if query.Preset == progress.RangeCustom {
		from, to, err := parseCustomRange(c.Query("from"), c.Query("to"))
		if err != nil {
			response.Error(c, err)
			return
		}
		query.CustomFrom = from
		query.CustomTo = to
	}

	start := time.Now()
	report, cacheHit, err := h.service.StudentProgress(c.Request.Context(), query, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, report, nil, meta)
}

func parseCustomRange(fromStr, toStr string) (time.Time, time.Time, error) {
	fromStr = strings.TrimSpace(fromStr)
	toStr = strings.TrimSpace(toStr)
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "custom range requires from and to")
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "invalid to date, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "to must not precede from")
	}
	return from, to, nil
}
