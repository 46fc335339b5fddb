package progress

import "github.com/edulane/tutoring-api/internal/models"

// Overview is the top-level snapshot for a student within a window.
// TotalSessions and AssessmentsCount let callers tell an empty window
// apart from genuinely failing performance; a grade of F with zero counts
// means "no data", not a failing student.
type Overview struct {
	Progress         int      `json:"progress"`
	AttendanceRate   int      `json:"attendance_rate"`
	AverageScore     float64  `json:"average_score"`
	MaxScore         float64  `json:"max_score"`
	MinScore         float64  `json:"min_score"`
	Grade            string   `json:"grade"`
	GradeSeverity    Severity `json:"grade_severity"`
	ProgressSeverity Severity `json:"progress_severity"`
	TotalSessions    int      `json:"total_sessions"`
	AttendedSessions int      `json:"attended_sessions"`
	AssessmentsCount int      `json:"assessments_count"`
	GradedCount      int      `json:"graded_count"`
}

// BuildOverview runs the rate calculator, weighted scorer and both
// mappers over an already-filtered record set.
func BuildOverview(sessions []models.LearningSession, subs []models.AssessmentSubmission, w Weights) Overview {
	rate := AttendanceRate(sessions)
	stats := ComputeScoreStats(subs)
	prog := WeightedProgress(rate, stats.Average, w)
	grade, gradeSeverity := GradeFromScore(stats.Average)

	return Overview{
		Progress:         prog,
		AttendanceRate:   rate,
		AverageScore:     stats.Average,
		MaxScore:         stats.Max,
		MinScore:         stats.Min,
		Grade:            grade,
		GradeSeverity:    gradeSeverity,
		ProgressSeverity: SeverityFromProgress(prog),
		TotalSessions:    len(sessions),
		AttendedSessions: AttendedCount(sessions),
		AssessmentsCount: len(subs),
		GradedCount:      stats.Count,
	}
}
