package progress

import (
	"math"

	"github.com/edulane/tutoring-api/internal/models"
)

// AttendanceRate computes the percentage of attended sessions rounded to
// the nearest integer. An empty slice yields 0 by definition, not as a
// division guard.
func AttendanceRate(sessions []models.LearningSession) int {
	if len(sessions) == 0 {
		return 0
	}
	attended := AttendedCount(sessions)
	rate := float64(attended) / float64(len(sessions)) * 100
	return int(math.Round(clamp(rate, 0, 100)))
}

// AttendedCount counts the sessions marked attended.
func AttendedCount(sessions []models.LearningSession) int {
	count := 0
	for _, session := range sessions {
		if session.Attended {
			count++
		}
	}
	return count
}

// ScoreStats summarises the graded submissions in scope. Ungraded
// submissions (nil score) are excluded, never treated as zero.
type ScoreStats struct {
	Average float64
	Max     float64
	Min     float64
	Count   int
}

// ComputeScoreStats aggregates non-nil scores. With no graded submissions
// the zero value is returned, leaving Average at 0; callers distinguish
// "no data" through Count, not through the average.
func ComputeScoreStats(subs []models.AssessmentSubmission) ScoreStats {
	stats := ScoreStats{}
	var total float64
	for _, sub := range subs {
		if sub.Score == nil {
			continue
		}
		score := clamp(*sub.Score, 0, 100)
		if stats.Count == 0 || score > stats.Max {
			stats.Max = score
		}
		if stats.Count == 0 || score < stats.Min {
			stats.Min = score
		}
		total += score
		stats.Count++
	}
	if stats.Count > 0 {
		stats.Average = total / float64(stats.Count)
	}
	return stats
}
