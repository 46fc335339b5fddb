package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edulane/tutoring-api/internal/dto"
	"github.com/edulane/tutoring-api/internal/middleware"
	"github.com/edulane/tutoring-api/internal/progress"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
	"github.com/edulane/tutoring-api/pkg/export"
	"github.com/edulane/tutoring-api/pkg/response"
)

type classDashboardService interface {
	Teacher(ctx context.Context, teacherID string, preset progress.RangePreset, customFrom, customTo time.Time) (*dto.ClassDashboardResponse, bool, error)
}

// DashboardHandler wires the class dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service  classDashboardService
	exporter *export.CSVExporter
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service classDashboardService) *DashboardHandler {
	return &DashboardHandler{service: service, exporter: export.NewCSVExporter()}
}

// Class godoc
// @Summary Teacher class dashboard
// @Tags Dashboard
// @Produce json
// @Param range query string false "Range preset: last_month, last_3_months, last_6_months, last_year, custom"
// @Param from query string false "Custom range start (YYYY-MM-DD)"
// @Param to query string false "Custom range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/class [get]
func (h *DashboardHandler) Class(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	preset := progress.RangePreset(strings.TrimSpace(c.Query("range")))
	var customFrom, customTo time.Time
	if preset == progress.RangeCustom {
		from, to, err := parseCustomRange(c.Query("from"), c.Query("to"))
		if err != nil {
			response.Error(c, err)
			return
		}
		customFrom = from
		customTo = to
	}

	start := time.Now()
	dashboard, cacheHit, err := h.service.Teacher(c.Request.Context(), claims.UserID, preset, customFrom, customTo)
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
	response.JSON(c, http.StatusOK, dashboard, nil, meta)
}

// ExportCSV godoc
// @Summary Download the class roll-up as CSV
// @Tags Dashboard
// @Produce text/csv
// @Param range query string false "Range preset: last_month, last_3_months, last_6_months, last_year, custom"
// @Param from query string false "Custom range start (YYYY-MM-DD)"
// @Param to query string false "Custom range end (YYYY-MM-DD)"
// @Success 200 {string} string "CSV payload"
// @Router /dashboard/class/export [get]
func (h *DashboardHandler) ExportCSV(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	preset := progress.RangePreset(strings.TrimSpace(c.Query("range")))
	var customFrom, customTo time.Time
	if preset == progress.RangeCustom {
		from, to, err := parseCustomRange(c.Query("from"), c.Query("to"))
		if err != nil {
			response.Error(c, err)
			return
		}
		customFrom = from
		customTo = to
	}

	dashboard, _, err := h.service.Teacher(c.Request.Context(), claims.UserID, preset, customFrom, customTo)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload, err := h.exporter.Render(classDataset(dashboard))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
		return
	}

	filename := fmt.Sprintf("class-dashboard-%s.csv", dashboard.Range.To.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

func classDataset(dashboard *dto.ClassDashboardResponse) export.Dataset {
	headers := []string{"student_id", "full_name", "progress", "grade", "attendance_rate", "average_score", "total_sessions", "assessments_count"}
	rows := make([]map[string]string, 0, len(dashboard.Students))
	for _, s := range dashboard.Students {
		rows = append(rows, map[string]string{
			"student_id":        s.StudentID,
			"full_name":         s.FullName,
			"progress":          strconv.Itoa(s.Progress),
			"grade":             s.Grade,
			"attendance_rate":   strconv.Itoa(s.AttendanceRate),
			"average_score":     strconv.FormatFloat(s.AverageScore, 'f', 1, 64),
			"total_sessions":    strconv.Itoa(s.TotalSessions),
			"assessments_count": strconv.Itoa(s.AssessmentsCount),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
