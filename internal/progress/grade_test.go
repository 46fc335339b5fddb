package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeFromScoreBands(t *testing.T) {
	cases := []struct {
		score    float64
		grade    string
		severity Severity
	}{
		{100, "A", SeveritySuccess},
		{90, "A", SeveritySuccess},
		{89, "B", SeveritySuccess},
		{80, "B", SeveritySuccess},
		{79, "C", SeverityWarning},
		{70, "C", SeverityWarning},
		{69, "D", SeverityWarning},
		{60, "D", SeverityWarning},
		{59, "F", SeverityError},
		{0, "F", SeverityError},
	}

	for _, tc := range cases {
		grade, severity := GradeFromScore(tc.score)
		assert.Equal(t, tc.grade, grade, "score %v", tc.score)
		assert.Equal(t, tc.severity, severity, "score %v", tc.score)
	}
}

func TestGradeFromScoreIsTotal(t *testing.T) {
	for score := 0; score <= 100; score++ {
		grade, severity := GradeFromScore(float64(score))
		assert.Contains(t, []string{"A", "B", "C", "D", "F"}, grade)
		assert.Contains(t, []Severity{SeveritySuccess, SeverityWarning, SeverityError}, severity)
	}
}

func TestSeverityFromProgressBands(t *testing.T) {
	cases := []struct {
		progress int
		severity Severity
	}{
		{100, SeveritySuccess},
		{80, SeveritySuccess},
		{79, SeverityInfo},
		{60, SeverityInfo},
		{59, SeverityWarning},
		{40, SeverityWarning},
		{39, SeverityError},
		{0, SeverityError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.severity, SeverityFromProgress(tc.progress), "progress %d", tc.progress)
	}
}
