package progress

import (
	"time"

	"github.com/edulane/tutoring-api/internal/models"
)

// TrendBucket aggregates one calendar month of activity.
type TrendBucket struct {
	Month            time.Time `json:"-"`
	MonthLabel       string    `json:"month"`
	Progress         int       `json:"progress"`
	AttendanceRate   int       `json:"attendance_rate"`
	AverageScore     float64   `json:"average_score"`
	TotalSessions    int       `json:"total_sessions"`
	TotalAssessments int       `json:"total_assessments"`
}

// fallbackProgress seeds the carry-forward when the very first bucket has
// no activity to compute from.
const fallbackProgress = 50

// MonthlyTrend emits one bucket per calendar month from the month of from
// through the month of to, in chronological order. A month with no
// sessions and no submissions carries the previous bucket's progress
// forward (a left fold over the ordered months, seeded with 50). A window
// whose end precedes its start yields no buckets.
func MonthlyTrend(sessions []models.LearningSession, subs []models.AssessmentSubmission, from, to time.Time, subjectID string, w Weights) []TrendBucket {
	if to.Before(from) {
		return nil
	}

	start := startOfMonth(from)
	end := startOfMonth(to)

	var buckets []TrendBucket
	last := fallbackProgress
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		monthEnd := cursor.AddDate(0, 1, 0).Add(-time.Nanosecond)
		monthSessions := FilterSessions(sessions, cursor, monthEnd, subjectID)
		monthSubs := FilterSubmissions(subs, cursor, monthEnd, subjectID)

		bucket := TrendBucket{
			Month:            cursor,
			MonthLabel:       cursor.Format("Jan 2006"),
			TotalSessions:    len(monthSessions),
			TotalAssessments: len(monthSubs),
		}

		if len(monthSessions) == 0 && len(monthSubs) == 0 {
			bucket.Progress = last
		} else {
			rate := AttendanceRate(monthSessions)
			stats := ComputeScoreStats(monthSubs)
			bucket.AttendanceRate = rate
			bucket.AverageScore = stats.Average
			bucket.Progress = WeightedProgress(rate, stats.Average, w)
		}

		last = bucket.Progress
		buckets = append(buckets, bucket)
	}
	return buckets
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
