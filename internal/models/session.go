package models

import "time"

// SessionStatus represents the lifecycle state of a learning session.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Valid returns true when the status is a supported value.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled:
		return true
	default:
		return false
	}
}

// LearningSession represents a single tutoring session for a student.
// Attended is meaningful only once the session is completed, and
// PerformanceScore may be absent when the teacher has not scored it.
type LearningSession struct {
	ID               string        `db:"id" json:"id"`
	StudentID        string        `db:"student_id" json:"student_id"`
	SubjectID        string        `db:"subject_id" json:"subject_id"`
	TeacherID        string        `db:"teacher_id" json:"teacher_id"`
	StartTime        time.Time     `db:"start_time" json:"start_time"`
	EndTime          time.Time     `db:"end_time" json:"end_time"`
	Status           SessionStatus `db:"status" json:"status"`
	Attended         bool          `db:"attended" json:"attended"`
	PerformanceScore *float64      `db:"performance_score" json:"performance_score,omitempty"`
	Notes            *string       `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

// LearningSessionFilter defines query filters for session listings.
type LearningSessionFilter struct {
	StudentID string
	TeacherID string
	SubjectID string
	Status    *SessionStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}
