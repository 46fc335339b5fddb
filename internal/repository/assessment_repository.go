package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edulane/tutoring-api/internal/models"
)

// AssessmentRepository manages persistence for assessments and submissions.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs a new repository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const submissionColumns = `sub.id, sub.assessment_id, sub.student_id, sub.score, sub.submitted_at, sub.created_at,
a.subject_id, a.title AS assessment_title, a.type AS assessment_type`

// ListSubmissionsByStudent returns a student's submissions with the parent
// assessment's subject resolved, ordered by creation time.
func (r *AssessmentRepository) ListSubmissionsByStudent(ctx context.Context, studentID string, filter models.AssessmentSubmissionFilter) ([]models.AssessmentSubmission, error) {
	where := []string{"sub.student_id = $1"}
	args := []interface{}{studentID}
	if filter.SubjectID != "" {
		where = append(where, fmt.Sprintf("a.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("sub.created_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("sub.created_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	query := fmt.Sprintf(`SELECT %s
FROM assessment_submissions sub
JOIN assessments a ON a.id = sub.assessment_id
WHERE %s ORDER BY sub.created_at ASC`, submissionColumns, strings.Join(where, " AND "))
	var submissions []models.AssessmentSubmission
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// ListRecentSubmissionsByStudent returns the latest submissions for display.
func (r *AssessmentRepository) ListRecentSubmissionsByStudent(ctx context.Context, studentID string, limit int) ([]models.AssessmentSubmission, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT %s
FROM assessment_submissions sub
JOIN assessments a ON a.id = sub.assessment_id
WHERE sub.student_id = $1 ORDER BY sub.created_at DESC LIMIT %d`, submissionColumns, limit)
	var submissions []models.AssessmentSubmission
	if err := r.db.SelectContext(ctx, &submissions, query, studentID); err != nil {
		return nil, fmt.Errorf("list recent submissions: %w", err)
	}
	return submissions, nil
}
