package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/tutoring-api/internal/models"
)

func newSessionMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sessionRows(count int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "teacher_id", "start_time", "end_time", "status", "attended", "performance_score", "notes", "created_at", "updated_at"})
	now := time.Now()
	for i := 0; i < count; i++ {
		rows.AddRow("sess-1", "stu-1", "sub-1", "tch-1", now, now.Add(time.Hour), "completed", true, 85.0, nil, now, now)
	}
	return rows
}

func TestSessionRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newSessionMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT .+ FROM learning_sessions WHERE student_id = \\$1 ORDER BY start_time ASC").
		WithArgs("stu-1").
		WillReturnRows(sessionRows(2))

	sessions, err := repo.ListByStudent(context.Background(), "stu-1", models.LearningSessionFilter{})
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListByStudentWithFilters(t *testing.T) {
	db, mock, cleanup := newSessionMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM learning_sessions WHERE student_id = \\$1 AND subject_id = \\$2 AND start_time >= \\$3 AND start_time <= \\$4 ORDER BY start_time ASC").
		WithArgs("stu-1", "sub-1", from, to).
		WillReturnRows(sessionRows(1))

	sessions, err := repo.ListByStudent(context.Background(), "stu-1", models.LearningSessionFilter{
		SubjectID: "sub-1",
		DateFrom:  &from,
		DateTo:    &to,
	})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListUpcomingByTeacher(t *testing.T) {
	db, mock, cleanup := newSessionMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT .+ FROM learning_sessions\\s+WHERE teacher_id = \\$1 AND status = \\$2 AND start_time >= NOW\\(\\)").
		WithArgs("tch-1", models.SessionStatusScheduled).
		WillReturnRows(sessionRows(1))

	sessions, err := repo.ListUpcomingByTeacher(context.Background(), "tch-1", 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
