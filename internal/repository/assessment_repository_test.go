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

func newAssessmentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func submissionRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "assessment_id", "student_id", "score", "submitted_at", "created_at", "subject_id", "assessment_title", "assessment_type"}).
		AddRow("sub-1", "asm-1", "stu-1", 88.0, now, now, "subj-1", "Fractions quiz", "quiz").
		AddRow("sub-2", "asm-2", "stu-1", nil, nil, now, "subj-1", "Decimals homework", "homework")
}

func TestAssessmentRepositoryListSubmissionsByStudent(t *testing.T) {
	db, mock, cleanup := newAssessmentMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery("SELECT .+ FROM assessment_submissions sub\\s+JOIN assessments a ON a.id = sub.assessment_id\\s+WHERE sub.student_id = \\$1 ORDER BY sub.created_at ASC").
		WithArgs("stu-1").
		WillReturnRows(submissionRows())

	submissions, err := repo.ListSubmissionsByStudent(context.Background(), "stu-1", models.AssessmentSubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, submissions, 2)
	require.NotNil(t, submissions[0].Score)
	assert.InDelta(t, 88, *submissions[0].Score, 0.001)
	assert.Nil(t, submissions[1].Score)
	assert.Equal(t, "subj-1", submissions[0].SubjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryListSubmissionsBySubject(t *testing.T) {
	db, mock, cleanup := newAssessmentMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery("WHERE sub.student_id = \\$1 AND a.subject_id = \\$2 ORDER BY sub.created_at ASC").
		WithArgs("stu-1", "subj-1").
		WillReturnRows(submissionRows())

	submissions, err := repo.ListSubmissionsByStudent(context.Background(), "stu-1", models.AssessmentSubmissionFilter{SubjectID: "subj-1"})
	require.NoError(t, err)
	assert.Len(t, submissions, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
