package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/tutoring-api/internal/models"
)

func TestSubjectBreakdownRanksByProgressDescending(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	subjects := []models.Subject{
		{ID: "math", Name: "Mathematics"},
		{ID: "science", Name: "Science"},
	}
	sessions := []models.LearningSession{
		session("math", base, true),
		session("math", base.AddDate(0, 0, 1), false),
		session("science", base, true),
	}
	subs := []models.AssessmentSubmission{
		submission("math", base, scorePtr(60)),
		submission("science", base, scorePtr(95)),
	}

	breakdown := SubjectBreakdown(subjects, sessions, subs, DefaultWeights)
	require.Len(t, breakdown, 2)

	// Science: attendance 100, avg 95 -> 40 + 57 = 97.
	assert.Equal(t, "science", breakdown[0].SubjectID)
	assert.Equal(t, 97, breakdown[0].Progress)
	assert.Equal(t, "A", breakdown[0].Grade)
	assert.Equal(t, SeveritySuccess, breakdown[0].Severity)

	// Math: attendance 50, avg 60 -> 20 + 36 = 56.
	assert.Equal(t, "math", breakdown[1].SubjectID)
	assert.Equal(t, 56, breakdown[1].Progress)
	assert.Equal(t, 2, breakdown[1].TotalSessions)
	assert.Equal(t, 1, breakdown[1].AttendedSessions)
	assert.Equal(t, 50, breakdown[1].AttendanceRate)
	assert.Equal(t, "D", breakdown[1].Grade)
}

func TestSubjectBreakdownStableOnTies(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	subjects := []models.Subject{
		{ID: "history", Name: "History"},
		{ID: "art", Name: "Art"},
		{ID: "music", Name: "Music"},
	}
	// Identical records per subject produce identical progress.
	var sessions []models.LearningSession
	var subs []models.AssessmentSubmission
	for _, s := range subjects {
		sessions = append(sessions, session(s.ID, base, true))
		subs = append(subs, submission(s.ID, base, scorePtr(75)))
	}

	breakdown := SubjectBreakdown(subjects, sessions, subs, DefaultWeights)
	require.Len(t, breakdown, 3)
	assert.Equal(t, "history", breakdown[0].SubjectID)
	assert.Equal(t, "art", breakdown[1].SubjectID)
	assert.Equal(t, "music", breakdown[2].SubjectID)
}

func TestSubjectBreakdownNoActivitySubject(t *testing.T) {
	subjects := []models.Subject{{ID: "latin", Name: "Latin"}}

	breakdown := SubjectBreakdown(subjects, nil, nil, DefaultWeights)
	require.Len(t, breakdown, 1)
	assert.Zero(t, breakdown[0].Progress)
	assert.Zero(t, breakdown[0].TotalSessions)
	assert.Zero(t, breakdown[0].AssessmentsCount)
	// Grade F here means "no data"; callers must check the counts.
	assert.Equal(t, "F", breakdown[0].Grade)
}

func TestBuildOverviewScenario(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	sessions := make([]models.LearningSession, 0, 10)
	for i := 0; i < 10; i++ {
		sessions = append(sessions, session("math", base.AddDate(0, 0, i), i < 8))
	}
	subs := []models.AssessmentSubmission{
		submission("math", base, scorePtr(70)),
		submission("math", base, scorePtr(80)),
		submission("math", base, scorePtr(90)),
	}

	overview := BuildOverview(sessions, subs, DefaultWeights)
	assert.Equal(t, 80, overview.AttendanceRate)
	assert.InDelta(t, 80, overview.AverageScore, 0.001)
	assert.Equal(t, 80, overview.Progress)
	assert.Equal(t, "B", overview.Grade)
	// 80 meets the lower bound of the success band exactly.
	assert.Equal(t, SeveritySuccess, overview.ProgressSeverity)
	assert.Equal(t, 10, overview.TotalSessions)
	assert.Equal(t, 8, overview.AttendedSessions)
	assert.Equal(t, 3, overview.AssessmentsCount)
	assert.Equal(t, 3, overview.GradedCount)
}

func TestBuildOverviewEmptyIsNoData(t *testing.T) {
	overview := BuildOverview(nil, nil, DefaultWeights)
	assert.Zero(t, overview.Progress)
	assert.Zero(t, overview.AttendanceRate)
	assert.Zero(t, overview.AverageScore)
	assert.Equal(t, "F", overview.Grade)
	assert.Equal(t, SeverityError, overview.ProgressSeverity)
	assert.Zero(t, overview.TotalSessions)
	assert.Zero(t, overview.AssessmentsCount)
}
