package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/edulane/tutoring-api/pkg/errors"
)

type fixedMastery struct{}

func (fixedMastery) SkillMastery(context.Context, string) ([]SkillMastery, error) {
	return []SkillMastery{{Skill: "fractions", Mastery: 72}}, nil
}

func TestInsightsServiceDefaultsToUnimplemented(t *testing.T) {
	svc := NewInsightsService(nil, nil, nil, nil)

	_, err := svc.ForStudent(context.Background(), "st1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotImplemented.Code, appErr.Code)
	assert.Equal(t, 501, appErr.Status)
}

func TestInsightsServiceStopsAtFirstMissingProvider(t *testing.T) {
	svc := NewInsightsService(fixedMastery{}, nil, nil, nil)

	_, err := svc.ForStudent(context.Background(), "st1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotImplemented.Code, appErrors.FromError(err).Code)
}

func TestInsightsServiceRequiresStudentID(t *testing.T) {
	svc := NewInsightsService(nil, nil, nil, nil)

	_, err := svc.ForStudent(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
