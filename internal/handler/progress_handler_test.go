package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/tutoring-api/internal/dto"
	"github.com/edulane/tutoring-api/internal/middleware"
	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/internal/progress"
	"github.com/edulane/tutoring-api/internal/service"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
	"github.com/edulane/tutoring-api/pkg/response"
)

type progressServiceMock struct {
	resp      *dto.StudentProgressResponse
	err       error
	cacheHit  bool
	lastQuery service.ProgressQuery
	called    bool
}

func (m *progressServiceMock) StudentProgress(ctx context.Context, query service.ProgressQuery, requester *models.JWTClaims) (*dto.StudentProgressResponse, bool, error) {
	m.called = true
	m.lastQuery = query
	return m.resp, m.cacheHit, m.err
}

func TestProgressHandlerStudentProgress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &progressServiceMock{
		resp: &dto.StudentProgressResponse{StudentID: "st1", StudentName: "Alya Putri"},
	}
	handler := NewProgressHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/students/st1/progress?range=last_month&subjectId=math", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "st1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "parent-1", Role: models.RoleParent})

	handler.StudentProgress(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.called)
	assert.Equal(t, "st1", mockSvc.lastQuery.StudentID)
	assert.Equal(t, progress.RangeLastMonth, mockSvc.lastQuery.Preset)
	assert.Equal(t, "math", mockSvc.lastQuery.SubjectID)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Error)
}

func TestProgressHandlerCustomRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &progressServiceMock{resp: &dto.StudentProgressResponse{StudentID: "st1"}}
	handler := NewProgressHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/students/st1/progress?range=custom&from=2024-01-01&to=2024-03-31", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "st1"}}

	handler.StudentProgress(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-01-01", mockSvc.lastQuery.CustomFrom.Format("2006-01-02"))
	assert.Equal(t, "2024-03-31", mockSvc.lastQuery.CustomTo.Format("2006-01-02"))
}

func TestProgressHandlerCustomRangeValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProgressHandler(&progressServiceMock{})

	cases := []struct {
		name  string
		query string
	}{
		{"missing bounds", "range=custom"},
		{"bad from", "range=custom&from=January&to=2024-03-31"},
		{"inverted", "range=custom&from=2024-03-31&to=2024-01-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req, _ := http.NewRequest(http.MethodGet, "/students/st1/progress?"+tc.query, nil)
			c.Request = req
			c.Params = gin.Params{{Key: "id", Value: "st1"}}

			handler.StudentProgress(c)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProgressHandlerServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &progressServiceMock{err: appErrors.ErrForbidden}
	handler := NewProgressHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/students/st1/progress", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "st1"}}

	handler.StudentProgress(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}
