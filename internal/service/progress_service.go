package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edulane/tutoring-api/internal/dto"
	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/internal/progress"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
)

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ListSubjects(ctx context.Context, studentID string) ([]models.Subject, error)
}

type sessionLister interface {
	ListByStudent(ctx context.Context, studentID string, filter models.LearningSessionFilter) ([]models.LearningSession, error)
	ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]models.LearningSession, error)
}

type submissionLister interface {
	ListSubmissionsByStudent(ctx context.Context, studentID string, filter models.AssessmentSubmissionFilter) ([]models.AssessmentSubmission, error)
	ListRecentSubmissionsByStudent(ctx context.Context, studentID string, limit int) ([]models.AssessmentSubmission, error)
}

// ProgressQuery identifies the student and reporting window.
type ProgressQuery struct {
	StudentID  string
	Preset     progress.RangePreset
	CustomFrom time.Time
	CustomTo   time.Time
	SubjectID  string
}

// ProgressServiceConfig tunes the progress computation.
type ProgressServiceConfig struct {
	Weights     progress.Weights
	CacheTTL    time.Duration
	RecentLimit int
}

// ProgressService composes the parent dashboard payload. All scoring runs
// through the pure engine in internal/progress; this layer only fetches
// records, enforces ownership and caches the finished payload. Each call
// recomputes the full pipeline — there is no incremental update path.
type ProgressService struct {
	students    studentReader
	sessions    sessionLister
	assessments submissionLister
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
	cfg         ProgressServiceConfig
}

// ProgressServiceParams groups constructor dependencies.
type ProgressServiceParams struct {
	Students    studentReader
	Sessions    sessionLister
	Assessments submissionLister
	Cache       *CacheService
	Metrics     *MetricsService
	Logger      *zap.Logger
	Config      ProgressServiceConfig
}

// NewProgressService constructs a ProgressService with sane defaults.
func NewProgressService(params ProgressServiceParams) *ProgressService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := params.Config
	if !cfg.Weights.Valid() {
		logger.Warn("invalid progress weights, falling back to defaults",
			zap.Float64("attendance", cfg.Weights.Attendance),
			zap.Float64("score", cfg.Weights.Score))
		cfg.Weights = progress.DefaultWeights
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	return &ProgressService{
		students:    params.Students,
		sessions:    params.Sessions,
		assessments: params.Assessments,
		cache:       params.Cache,
		metrics:     params.Metrics,
		logger:      logger,
		now:         time.Now,
		cfg:         cfg,
	}
}

// StudentProgress returns the full progress payload for one student and
// indicates cache utilisation. Parents may only read their own children;
// teachers, support staff and admins are unrestricted.
func (s *ProgressService) StudentProgress(ctx context.Context, query ProgressQuery, requester *models.JWTClaims) (*dto.StudentProgressResponse, bool, error) {
	if query.StudentID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}

	student, err := s.students.FindByID(ctx, query.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if requester != nil && requester.Role == models.RoleParent && student.ParentID != requester.UserID {
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, "student does not belong to requester")
	}

	window := progress.ResolveRange(query.Preset, query.CustomFrom, query.CustomTo, s.now().UTC())
	cacheKey := s.cacheKey(query, window)
	if s.cache != nil {
		var cached dto.StudentProgressResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	response, err := s.compose(ctx, student, query, window)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("progress cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return response, false, nil
}

func (s *ProgressService) compose(ctx context.Context, student *models.Student, query ProgressQuery, window progress.TimeRange) (*dto.StudentProgressResponse, error) {
	start := time.Now()
	sessions, err := s.sessions.ListByStudent(ctx, student.ID, models.LearningSessionFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}
	submissions, err := s.assessments.ListSubmissionsByStudent(ctx, student.ID, models.AssessmentSubmissionFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}
	subjects, err := s.students.ListSubjects(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("progress_student_records", time.Since(start))
	}

	inRangeSessions := progress.FilterSessions(sessions, window.From, window.To, query.SubjectID)
	inRangeSubs := progress.FilterSubmissions(submissions, window.From, window.To, query.SubjectID)

	recentSessions, err := s.sessions.ListRecentByStudent(ctx, student.ID, s.cfg.RecentLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent sessions")
	}
	recentSubs, err := s.assessments.ListRecentSubmissionsByStudent(ctx, student.ID, s.cfg.RecentLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent submissions")
	}

	return &dto.StudentProgressResponse{
		StudentID:   student.ID,
		StudentName: student.FullName,
		Range: dto.RangeMeta{
			Preset:    string(query.Preset),
			From:      window.From,
			To:        window.To,
			SubjectID: query.SubjectID,
		},
		Overview:          progress.BuildOverview(inRangeSessions, inRangeSubs, s.cfg.Weights),
		Trend:             progress.MonthlyTrend(sessions, submissions, window.From, window.To, query.SubjectID, s.cfg.Weights),
		Subjects:          progress.SubjectBreakdown(subjects, inRangeSessions, inRangeSubs, s.cfg.Weights),
		RecentSessions:    recentSessions,
		RecentAssessments: recentSubs,
	}, nil
}

func (s *ProgressService) cacheKey(query ProgressQuery, window progress.TimeRange) string {
	return fmt.Sprintf("progress:student:%s:%s:%s:%s:%s",
		query.StudentID,
		query.Preset,
		window.From.Format("2006-01-02"),
		window.To.Format("2006-01-02"),
		query.SubjectID,
	)
}
