package models

import "time"

// Assessment represents a graded exercise definition (quiz, homework, exam).
type Assessment struct {
	ID        string    `db:"id" json:"id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Title     string    `db:"title" json:"title"`
	Type      string    `db:"type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AssessmentSubmission represents a student's submission for an assessment.
// Score is nil while ungraded; ungraded submissions are excluded from
// averages rather than counted as zero. SubjectID and Title are resolved
// from the parent assessment at query time.
type AssessmentSubmission struct {
	ID              string     `db:"id" json:"id"`
	AssessmentID    string     `db:"assessment_id" json:"assessment_id"`
	StudentID       string     `db:"student_id" json:"student_id"`
	Score           *float64   `db:"score" json:"score,omitempty"`
	SubmittedAt     *time.Time `db:"submitted_at" json:"submitted_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	SubjectID       string     `db:"subject_id" json:"subject_id"`
	AssessmentTitle string     `db:"assessment_title" json:"assessment_title"`
	AssessmentType  string     `db:"assessment_type" json:"assessment_type"`
}

// AssessmentSubmissionFilter defines query filters for submission listings.
type AssessmentSubmissionFilter struct {
	StudentID string
	SubjectID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}
