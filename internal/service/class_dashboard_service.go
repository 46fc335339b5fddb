package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/edulane/tutoring-api/internal/dto"
	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/internal/progress"
	appErrors "github.com/edulane/tutoring-api/pkg/errors"
)

type studentLister interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
}

type upcomingSessionLister interface {
	ListUpcomingByTeacher(ctx context.Context, teacherID string, limit int) ([]models.LearningSession, error)
}

// ClassDashboardConfig tunes dashboard behaviour and alert thresholds.
type ClassDashboardConfig struct {
	Weights                progress.Weights
	CacheTTL               time.Duration
	LowAttendanceThreshold float64
	AtRiskProgressMax      float64
	UpcomingLimit          int
}

// ClassDashboardService composes the teacher dashboard: the progress
// engine runs once per enrolled student and the results are rolled up
// into class aggregates and alert lists.
type ClassDashboardService struct {
	students    studentLister
	sessions    sessionLister
	upcoming    upcomingSessionLister
	assessments submissionLister
	cache       *CacheService
	logger      *zap.Logger
	now         func() time.Time
	cfg         ClassDashboardConfig
}

// ClassDashboardParams groups constructor dependencies.
type ClassDashboardParams struct {
	Students    studentLister
	Sessions    sessionLister
	Upcoming    upcomingSessionLister
	Assessments submissionLister
	Cache       *CacheService
	Logger      *zap.Logger
	Config      ClassDashboardConfig
}

// NewClassDashboardService constructs the service with sane defaults.
func NewClassDashboardService(params ClassDashboardParams) *ClassDashboardService {
	cfg := params.Config
	if !cfg.Weights.Valid() {
		cfg.Weights = progress.DefaultWeights
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.LowAttendanceThreshold <= 0 {
		cfg.LowAttendanceThreshold = 75
	}
	if cfg.AtRiskProgressMax <= 0 {
		cfg.AtRiskProgressMax = 40
	}
	if cfg.UpcomingLimit <= 0 {
		cfg.UpcomingLimit = 10
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassDashboardService{
		students:    params.Students,
		sessions:    params.Sessions,
		upcoming:    params.Upcoming,
		assessments: params.Assessments,
		cache:       params.Cache,
		logger:      logger,
		now:         time.Now,
		cfg:         cfg,
	}
}

// Teacher returns the class dashboard for the requesting teacher and
// indicates cache utilisation.
func (s *ClassDashboardService) Teacher(ctx context.Context, teacherID string, preset progress.RangePreset, customFrom, customTo time.Time) (*dto.ClassDashboardResponse, bool, error) {
	if teacherID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "teacherId is required")
	}

	window := progress.ResolveRange(preset, customFrom, customTo, s.now().UTC())
	cacheKey := fmt.Sprintf("dash:class:%s:%s:%s:%s", teacherID, preset, window.From.Format("2006-01-02"), window.To.Format("2006-01-02"))
	if s.cache != nil {
		var cached dto.ClassDashboardResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	response, err := s.compose(ctx, teacherID, preset, window)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("class dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return response, false, nil
}

func (s *ClassDashboardService) compose(ctx context.Context, teacherID string, preset progress.RangePreset, window progress.TimeRange) (*dto.ClassDashboardResponse, error) {
	students, _, err := s.students.List(ctx, models.StudentFilter{TeacherID: teacherID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class students")
	}

	snapshots := make([]dto.StudentSnapshot, 0, len(students))
	alerts := dto.ClassAlerts{}
	var progressTotal, sessionTotal, attendedTotal int
	for _, student := range students {
		sessions, err := s.sessions.ListByStudent(ctx, student.ID, models.LearningSessionFilter{})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student sessions")
		}
		submissions, err := s.assessments.ListSubmissionsByStudent(ctx, student.ID, models.AssessmentSubmissionFilter{})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student submissions")
		}

		inRangeSessions := progress.FilterSessions(sessions, window.From, window.To, "")
		inRangeSubs := progress.FilterSubmissions(submissions, window.From, window.To, "")
		overview := progress.BuildOverview(inRangeSessions, inRangeSubs, s.cfg.Weights)

		snapshots = append(snapshots, dto.StudentSnapshot{
			StudentID:        student.ID,
			FullName:         student.FullName,
			Progress:         overview.Progress,
			Severity:         overview.ProgressSeverity,
			AttendanceRate:   overview.AttendanceRate,
			AverageScore:     overview.AverageScore,
			Grade:            overview.Grade,
			TotalSessions:    overview.TotalSessions,
			AssessmentsCount: overview.AssessmentsCount,
		})

		progressTotal += overview.Progress
		sessionTotal += overview.TotalSessions
		attendedTotal += overview.AttendedSessions

		hasData := overview.TotalSessions > 0 || overview.AssessmentsCount > 0
		if overview.TotalSessions > 0 && float64(overview.AttendanceRate) < s.cfg.LowAttendanceThreshold {
			alerts.LowAttendance = append(alerts.LowAttendance, student.ID)
		}
		if hasData && float64(overview.Progress) <= s.cfg.AtRiskProgressMax {
			alerts.AtRisk = append(alerts.AtRisk, student.ID)
		}
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Progress > snapshots[j].Progress
	})

	response := &dto.ClassDashboardResponse{
		TeacherID: teacherID,
		Range: dto.RangeMeta{
			Preset: string(preset),
			From:   window.From,
			To:     window.To,
		},
		Students: snapshots,
		Alerts:   alerts,
	}
	if len(snapshots) > 0 {
		response.AverageProgress = int(math.Round(float64(progressTotal) / float64(len(snapshots))))
	}
	if sessionTotal > 0 {
		response.AttendanceRate = int(math.Round(float64(attendedTotal) / float64(sessionTotal) * 100))
	}

	if s.upcoming != nil {
		upcoming, err := s.upcoming.ListUpcomingByTeacher(ctx, teacherID, s.cfg.UpcomingLimit)
		if err != nil {
			s.logger.Warn("upcoming session fetch failed", zap.String("teacher_id", teacherID), zap.Error(err))
		} else {
			response.UpcomingSessions = upcoming
		}
	}
	return response, nil
}
