package progress

import (
	"sort"

	"github.com/edulane/tutoring-api/internal/models"
)

// SubjectProgress summarises one subject's activity within the window.
type SubjectProgress struct {
	SubjectID        string   `json:"subject_id"`
	Name             string   `json:"name"`
	Progress         int      `json:"progress"`
	TotalSessions    int      `json:"total_sessions"`
	AttendedSessions int      `json:"attended_sessions"`
	AttendanceRate   int      `json:"attendance_rate"`
	AssessmentsCount int      `json:"assessments_count"`
	AverageScore     float64  `json:"average_score"`
	Grade            string   `json:"grade"`
	Severity         Severity `json:"severity"`
}

// SubjectBreakdown computes per-subject aggregates over already
// range-filtered sessions and submissions, ranked by progress. The sort
// is stable: subjects with equal progress keep their encounter order.
func SubjectBreakdown(subjects []models.Subject, sessions []models.LearningSession, subs []models.AssessmentSubmission, w Weights) []SubjectProgress {
	breakdown := make([]SubjectProgress, 0, len(subjects))
	for _, subject := range subjects {
		subjectSessions := make([]models.LearningSession, 0, len(sessions))
		for _, session := range sessions {
			if session.SubjectID == subject.ID {
				subjectSessions = append(subjectSessions, session)
			}
		}
		subjectSubs := make([]models.AssessmentSubmission, 0, len(subs))
		for _, sub := range subs {
			if sub.SubjectID == subject.ID {
				subjectSubs = append(subjectSubs, sub)
			}
		}

		rate := AttendanceRate(subjectSessions)
		stats := ComputeScoreStats(subjectSubs)
		prog := WeightedProgress(rate, stats.Average, w)
		grade, severity := GradeFromScore(stats.Average)

		breakdown = append(breakdown, SubjectProgress{
			SubjectID:        subject.ID,
			Name:             subject.Name,
			Progress:         prog,
			TotalSessions:    len(subjectSessions),
			AttendedSessions: AttendedCount(subjectSessions),
			AttendanceRate:   rate,
			AssessmentsCount: len(subjectSubs),
			AverageScore:     stats.Average,
			Grade:            grade,
			Severity:         severity,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Progress > breakdown[j].Progress
	})
	return breakdown
}
