package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveRangePresets(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		preset RangePreset
		from   time.Time
	}{
		{RangeLastMonth, now.AddDate(0, -1, 0)},
		{RangeLast3Months, now.AddDate(0, -3, 0)},
		{RangeLast6Months, now.AddDate(0, -6, 0)},
		{RangeLastYear, now.AddDate(-1, 0, 0)},
	}

	for _, tc := range cases {
		r := ResolveRange(tc.preset, time.Time{}, time.Time{}, now)
		assert.Equal(t, tc.from, r.From, "preset %s", tc.preset)
		assert.Equal(t, now, r.To, "preset %s", tc.preset)
	}
}

func TestResolveRangeUnknownFallsBackToThreeMonths(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	r := ResolveRange(RangePreset("this_week"), time.Time{}, time.Time{}, now)
	assert.Equal(t, now.AddDate(0, -3, 0), r.From)
	assert.Equal(t, now, r.To)
}

func TestResolveRangeCustomUsesCallerBounds(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	r := ResolveRange(RangeCustom, from, to, now)
	assert.Equal(t, from, r.From)
	assert.Equal(t, to, r.To)
}
