package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/tutoring-api/internal/service"
)

func TestMetricsHandlerHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMetricsHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	c.Request = req

	handler.Health(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsHandlerSystemStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodGet, "/students/:id/progress", http.StatusOK, 12*time.Millisecond)
	metrics.RecordCacheOperation(true, time.Millisecond)
	handler := NewMetricsHandler(metrics)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/system/status", nil)
	c.Request = req

	handler.SystemStatus(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			RequestsTotal uint64  `json:"requests_total"`
			CacheHitRatio float64 `json:"cache_hit_ratio"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint64(1), body.Data.RequestsTotal)
	assert.Equal(t, 1.0, body.Data.CacheHitRatio)
}
