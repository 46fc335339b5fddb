package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/internal/progress"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
)

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if s.store == nil {
		return appErrors.ErrCacheMiss
	}
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	s.store = nil
	return nil
}

type fakeStudentStore struct {
	students map[string]models.Student
	subjects map[string][]models.Subject
	listErr  error
}

func (f *fakeStudentStore) FindByID(_ context.Context, id string) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentStore) ListSubjects(_ context.Context, studentID string) ([]models.Subject, error) {
	return f.subjects[studentID], nil
}

func (f *fakeStudentStore) List(_ context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	out := make([]models.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, len(out), nil
}

type fakeSessionStore struct {
	sessions map[string][]models.LearningSession
	upcoming []models.LearningSession
	err      error
}

func (f *fakeSessionStore) ListByStudent(_ context.Context, studentID string, _ models.LearningSessionFilter) ([]models.LearningSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[studentID], nil
}

func (f *fakeSessionStore) ListRecentByStudent(_ context.Context, studentID string, limit int) ([]models.LearningSession, error) {
	list := f.sessions[studentID]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeSessionStore) ListUpcomingByTeacher(_ context.Context, _ string, _ int) ([]models.LearningSession, error) {
	return f.upcoming, nil
}

type fakeSubmissionStore struct {
	submissions map[string][]models.AssessmentSubmission
	err         error
}

func (f *fakeSubmissionStore) ListSubmissionsByStudent(_ context.Context, studentID string, _ models.AssessmentSubmissionFilter) ([]models.AssessmentSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.submissions[studentID], nil
}

func (f *fakeSubmissionStore) ListRecentSubmissionsByStudent(_ context.Context, studentID string, limit int) ([]models.AssessmentSubmission, error) {
	list := f.submissions[studentID]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func completedSession(studentID, subjectID string, start time.Time, attended bool, score *float64) models.LearningSession {
	return models.LearningSession{
		StudentID:        studentID,
		SubjectID:        subjectID,
		StartTime:        start,
		EndTime:          start.Add(time.Hour),
		Status:           models.SessionStatusCompleted,
		Attended:         attended,
		PerformanceScore: score,
	}
}

func gradedSubmission(studentID, subjectID string, created time.Time, score float64) models.AssessmentSubmission {
	return models.AssessmentSubmission{
		StudentID: studentID,
		SubjectID: subjectID,
		Score:     &score,
		CreatedAt: created,
	}
}

func newProgressFixture() (*ProgressService, *fakeStudentStore, *stubCacheRepo) {
	may := time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)
	students := &fakeStudentStore{
		students: map[string]models.Student{
			"st1": {ID: "st1", ParentID: "parent-1", FullName: "Alya Putri", Active: true},
		},
		subjects: map[string][]models.Subject{
			"st1": {{ID: "math", Name: "Mathematics"}},
		},
	}
	sessions := &fakeSessionStore{sessions: map[string][]models.LearningSession{
		"st1": {
			completedSession("st1", "math", may, true, nil),
			completedSession("st1", "math", may.AddDate(0, 0, 2), true, nil),
		},
	}}
	submissions := &fakeSubmissionStore{submissions: map[string][]models.AssessmentSubmission{
		"st1": {gradedSubmission("st1", "math", may.AddDate(0, 0, 1), 80)},
	}}
	cacheRepo := &stubCacheRepo{}
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)

	svc := NewProgressService(ProgressServiceParams{
		Students:    students,
		Sessions:    sessions,
		Assessments: submissions,
		Cache:       cache,
		Logger:      zap.NewNop(),
	})
	svc.now = func() time.Time { return time.Date(2024, time.May, 31, 12, 0, 0, 0, time.UTC) }
	return svc, students, cacheRepo
}

func TestProgressServiceStudentProgress(t *testing.T) {
	svc, _, _ := newProgressFixture()

	resp, cached, err := svc.StudentProgress(context.Background(), ProgressQuery{StudentID: "st1", Preset: progress.RangeLastMonth}, nil)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "st1", resp.StudentID)
	assert.Equal(t, "Alya Putri", resp.StudentName)
	// two attended sessions and one 80 submission: 100*0.4 + 80*0.6.
	assert.Equal(t, 88, resp.Overview.Progress)
	assert.Equal(t, 100, resp.Overview.AttendanceRate)
	assert.Equal(t, "B", resp.Overview.Grade)
	require.Len(t, resp.Subjects, 1)
	assert.Equal(t, "math", resp.Subjects[0].SubjectID)
	assert.NotEmpty(t, resp.Trend)
	assert.Len(t, resp.RecentSessions, 2)
}

func TestProgressServiceCachesPayload(t *testing.T) {
	svc, _, cacheRepo := newProgressFixture()
	query := ProgressQuery{StudentID: "st1", Preset: progress.RangeLastMonth}

	first, cached, err := svc.StudentProgress(context.Background(), query, nil)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.NotEmpty(t, cacheRepo.store)

	second, cached, err := svc.StudentProgress(context.Background(), query, nil)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first.Overview.Progress, second.Overview.Progress)
}

func TestProgressServiceParentOwnership(t *testing.T) {
	svc, _, _ := newProgressFixture()
	query := ProgressQuery{StudentID: "st1", Preset: progress.RangeLastMonth}

	owner := &models.JWTClaims{UserID: "parent-1", Role: models.RoleParent}
	_, _, err := svc.StudentProgress(context.Background(), query, owner)
	require.NoError(t, err)

	stranger := &models.JWTClaims{UserID: "parent-2", Role: models.RoleParent}
	_, _, err = svc.StudentProgress(context.Background(), query, stranger)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestProgressServiceStudentNotFound(t *testing.T) {
	svc, _, _ := newProgressFixture()

	_, _, err := svc.StudentProgress(context.Background(), ProgressQuery{StudentID: "missing"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNewProgressServiceDefaultsInvalidWeights(t *testing.T) {
	svc := NewProgressService(ProgressServiceParams{
		Config: ProgressServiceConfig{Weights: progress.Weights{Attendance: 0.9, Score: 0.9}},
	})
	assert.Equal(t, progress.DefaultWeights, svc.cfg.Weights)
}

func TestProgressServiceRequiresStudentID(t *testing.T) {
	svc, _, _ := newProgressFixture()

	_, _, err := svc.StudentProgress(context.Background(), ProgressQuery{}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
