package dto

import (
	"time"

	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/internal/progress"
)

// RangeMeta echoes the resolved reporting window back to the client.
type RangeMeta struct {
	Preset    string    `json:"preset"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	SubjectID string    `json:"subject_id,omitempty"`
}

// StudentProgressResponse is the parent dashboard payload for one student.
// Overview carries total_sessions and assessments_count so clients can
// tell "no data" apart from genuinely poor performance; the grade alone
// is not sufficient.
type StudentProgressResponse struct {
	StudentID         string                        `json:"student_id"`
	StudentName       string                        `json:"student_name"`
	Range             RangeMeta                     `json:"range"`
	Overview          progress.Overview             `json:"overview"`
	Trend             []progress.TrendBucket        `json:"trend"`
	Subjects          []progress.SubjectProgress    `json:"subjects"`
	RecentSessions    []models.LearningSession      `json:"recent_sessions"`
	RecentAssessments []models.AssessmentSubmission `json:"recent_assessments"`
}
