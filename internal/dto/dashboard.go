package dto

import (
	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/internal/progress"
)

// StudentSnapshot is one row in the teacher's class roll-up.
type StudentSnapshot struct {
	StudentID        string            `json:"student_id"`
	FullName         string            `json:"full_name"`
	Progress         int               `json:"progress"`
	Severity         progress.Severity `json:"severity"`
	AttendanceRate   int               `json:"attendance_rate"`
	AverageScore     float64           `json:"average_score"`
	Grade            string            `json:"grade"`
	TotalSessions    int               `json:"total_sessions"`
	AssessmentsCount int               `json:"assessments_count"`
}

// ClassAlerts lists students needing teacher attention.
type ClassAlerts struct {
	LowAttendance []string `json:"low_attendance,omitempty"`
	AtRisk        []string `json:"at_risk,omitempty"`
}

// ClassDashboardResponse is the teacher dashboard payload.
type ClassDashboardResponse struct {
	TeacherID        string                   `json:"teacher_id"`
	Range            RangeMeta                `json:"range"`
	Students         []StudentSnapshot        `json:"students"`
	AverageProgress  int                      `json:"average_progress"`
	AttendanceRate   int                      `json:"attendance_rate"`
	Alerts           ClassAlerts              `json:"alerts"`
	UpcomingSessions []models.LearningSession `json:"upcoming_sessions"`
}
