package service

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/edulane/tutoring-api/pkg/errors"
)

// SkillMastery scores one skill area for a student.
type SkillMastery struct {
	Skill   string `json:"skill"`
	Mastery int    `json:"mastery"`
}

// ClassComparison positions a student against class-wide aggregates.
type ClassComparison struct {
	StudentProgress int `json:"student_progress"`
	ClassAverage    int `json:"class_average"`
	Percentile      int `json:"percentile"`
}

// FocusArea is a recommended topic for additional practice.
type FocusArea struct {
	SubjectID string `json:"subject_id"`
	Topic     string `json:"topic"`
	Reason    string `json:"reason"`
}

// SkillMasteryProvider resolves per-skill mastery from a real assessment
// item bank. No built-in implementation exists yet.
type SkillMasteryProvider interface {
	SkillMastery(ctx context.Context, studentID string) ([]SkillMastery, error)
}

// ClassComparisonProvider compares a student against class aggregates.
type ClassComparisonProvider interface {
	ClassComparison(ctx context.Context, studentID string) (*ClassComparison, error)
}

// FocusAreaProvider recommends topics for additional practice.
type FocusAreaProvider interface {
	FocusAreas(ctx context.Context, studentID string) ([]FocusArea, error)
}

// UnimplementedInsights satisfies all provider interfaces by reporting
// that no data source is wired. It keeps the endpoints honest instead of
// serving fabricated analytics.
type UnimplementedInsights struct{}

func (UnimplementedInsights) SkillMastery(context.Context, string) ([]SkillMastery, error) {
	return nil, appErrors.Clone(appErrors.ErrNotImplemented, "skill mastery requires an assessment item bank")
}

func (UnimplementedInsights) ClassComparison(context.Context, string) (*ClassComparison, error) {
	return nil, appErrors.Clone(appErrors.ErrNotImplemented, "class comparison requires cohort aggregates")
}

func (UnimplementedInsights) FocusAreas(context.Context, string) ([]FocusArea, error) {
	return nil, appErrors.Clone(appErrors.ErrNotImplemented, "focus areas require a curriculum topic map")
}

// InsightsService fans out to the configured providers.
type InsightsService struct {
	mastery    SkillMasteryProvider
	comparison ClassComparisonProvider
	focus      FocusAreaProvider
	logger     *zap.Logger
}

// NewInsightsService constructs an InsightsService. Nil providers fall
// back to UnimplementedInsights.
func NewInsightsService(mastery SkillMasteryProvider, comparison ClassComparisonProvider, focus FocusAreaProvider, logger *zap.Logger) *InsightsService {
	if mastery == nil {
		mastery = UnimplementedInsights{}
	}
	if comparison == nil {
		comparison = UnimplementedInsights{}
	}
	if focus == nil {
		focus = UnimplementedInsights{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsService{mastery: mastery, comparison: comparison, focus: focus, logger: logger}
}

// StudentInsights gathers every insight the providers can serve.
type StudentInsights struct {
	SkillMastery    []SkillMastery   `json:"skill_mastery,omitempty"`
	ClassComparison *ClassComparison `json:"class_comparison,omitempty"`
	FocusAreas      []FocusArea      `json:"focus_areas,omitempty"`
}

// ForStudent collects insights for a student. It fails with the first
// provider error so callers can surface NOT_IMPLEMENTED cleanly.
func (s *InsightsService) ForStudent(ctx context.Context, studentID string) (*StudentInsights, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	mastery, err := s.mastery.SkillMastery(ctx, studentID)
	if err != nil {
		return nil, err
	}
	comparison, err := s.comparison.ClassComparison(ctx, studentID)
	if err != nil {
		return nil, err
	}
	focus, err := s.focus.FocusAreas(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &StudentInsights{SkillMastery: mastery, ClassComparison: comparison, FocusAreas: focus}, nil
}
