package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edulane/tutoring-api/internal/models"
)

// SessionRepository manages persistence for learning sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs a new repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = "id, student_id, subject_id, teacher_id, start_time, end_time, status, attended, performance_score, notes, created_at, updated_at"

// ListByStudent returns all of a student's sessions ordered by start time.
// The progress engine narrows the window in memory, so the query
// deliberately fetches the full history unless a filter bound is given.
func (r *SessionRepository) ListByStudent(ctx context.Context, studentID string, filter models.LearningSessionFilter) ([]models.LearningSession, error) {
	where := []string{"student_id = $1"}
	args := []interface{}{studentID}
	if filter.SubjectID != "" {
		where = append(where, fmt.Sprintf("subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("start_time >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("start_time <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	query := fmt.Sprintf("SELECT %s FROM learning_sessions WHERE %s ORDER BY start_time ASC", sessionColumns, strings.Join(where, " AND "))
	var sessions []models.LearningSession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// ListRecentByStudent returns the most recent sessions for display.
func (r *SessionRepository) ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]models.LearningSession, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf("SELECT %s FROM learning_sessions WHERE student_id = $1 ORDER BY start_time DESC LIMIT %d", sessionColumns, limit)
	var sessions []models.LearningSession
	if err := r.db.SelectContext(ctx, &sessions, query, studentID); err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	return sessions, nil
}

// ListUpcomingByTeacher returns a teacher's scheduled sessions from the
// provided instant on, earliest first.
func (r *SessionRepository) ListUpcomingByTeacher(ctx context.Context, teacherID string, limit int) ([]models.LearningSession, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT %s FROM learning_sessions
WHERE teacher_id = $1 AND status = $2 AND start_time >= NOW()
ORDER BY start_time ASC LIMIT %d`, sessionColumns, limit)
	var sessions []models.LearningSession
	if err := r.db.SelectContext(ctx, &sessions, query, teacherID, models.SessionStatusScheduled); err != nil {
		return nil, fmt.Errorf("list upcoming sessions: %w", err)
	}
	return sessions, nil
}
