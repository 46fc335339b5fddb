package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/tutoring-api/internal/models"
)

func TestMonthlyTrendSingleEmptyMonthDefaultsToFifty(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	buckets := MonthlyTrend(nil, nil, from, to, "", DefaultWeights)
	require.Len(t, buckets, 1)
	assert.Equal(t, 50, buckets[0].Progress)
	assert.Equal(t, "May 2024", buckets[0].MonthLabel)
	assert.Zero(t, buckets[0].TotalSessions)
	assert.Zero(t, buckets[0].TotalAssessments)
}

func TestMonthlyTrendCarriesForwardPreviousProgress(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	// Activity only in March: full attendance, average score 80.
	sessions := []models.LearningSession{
		session("math", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), true),
		session("math", time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC), true),
	}
	subs := []models.AssessmentSubmission{
		submission("math", time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), scorePtr(80)),
	}

	buckets := MonthlyTrend(sessions, subs, from, to, "", DefaultWeights)
	require.Len(t, buckets, 3)

	march := buckets[0]
	assert.Equal(t, "Mar 2024", march.MonthLabel)
	assert.Equal(t, 100, march.AttendanceRate)
	assert.InDelta(t, 80, march.AverageScore, 0.001)
	// 100*0.4 + 80*0.6 = 88
	assert.Equal(t, 88, march.Progress)
	assert.Equal(t, 2, march.TotalSessions)
	assert.Equal(t, 1, march.TotalAssessments)

	// April and May have no activity and inherit March's progress.
	assert.Equal(t, "Apr 2024", buckets[1].MonthLabel)
	assert.Equal(t, 88, buckets[1].Progress)
	assert.Zero(t, buckets[1].TotalSessions)
	assert.Equal(t, "May 2024", buckets[2].MonthLabel)
	assert.Equal(t, 88, buckets[2].Progress)
}

func TestMonthlyTrendComputesEachActiveMonthIndependently(t *testing.T) {
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	sessions := []models.LearningSession{
		session("math", time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC), true),
		session("math", time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC), false),
	}

	buckets := MonthlyTrend(sessions, nil, from, to, "", DefaultWeights)
	require.Len(t, buckets, 2)
	// January: attendance 100, no scores -> 100*0.4 = 40.
	assert.Equal(t, 40, buckets[0].Progress)
	// February recomputes from its own records: attendance 0 -> progress 0.
	assert.Equal(t, 0, buckets[1].Progress)
}

func TestMonthlyTrendInvalidRangeYieldsNoBuckets(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -2, 0)

	buckets := MonthlyTrend(nil, nil, from, to, "", DefaultWeights)
	assert.Empty(t, buckets)
}

func TestMonthlyTrendHonoursSubjectFilter(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	sessions := []models.LearningSession{
		session("math", time.Date(2024, 5, 5, 9, 0, 0, 0, time.UTC), true),
		session("science", time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC), false),
	}

	buckets := MonthlyTrend(sessions, nil, from, to, "math", DefaultWeights)
	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[0].TotalSessions)
	assert.Equal(t, 100, buckets[0].AttendanceRate)
}

func TestMonthlyTrendChronologicalOrder(t *testing.T) {
	from := time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	buckets := MonthlyTrend(nil, nil, from, to, "", DefaultWeights)
	require.Len(t, buckets, 4)
	labels := []string{"Nov 2023", "Dec 2023", "Jan 2024", "Feb 2024"}
	for i, bucket := range buckets {
		assert.Equal(t, labels[i], bucket.MonthLabel)
	}
}
