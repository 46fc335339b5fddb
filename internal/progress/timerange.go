package progress

import "time"

// RangePreset names a relative reporting window.
type RangePreset string

const (
	RangeLastMonth   RangePreset = "last_month"
	RangeLast3Months RangePreset = "last_3_months"
	RangeLast6Months RangePreset = "last_6_months"
	RangeLastYear    RangePreset = "last_year"
	RangeCustom      RangePreset = "custom"
)

// TimeRange is an inclusive [From, To] window.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// ResolveRange maps a preset onto a concrete window ending at now. The
// custom preset uses the caller-supplied bounds as-is. Unknown presets
// fall back to the last three months.
func ResolveRange(preset RangePreset, customFrom, customTo time.Time, now time.Time) TimeRange {
	switch preset {
	case RangeCustom:
		return TimeRange{From: customFrom, To: customTo}
	case RangeLastMonth:
		return TimeRange{From: now.AddDate(0, -1, 0), To: now}
	case RangeLast6Months:
		return TimeRange{From: now.AddDate(0, -6, 0), To: now}
	case RangeLastYear:
		return TimeRange{From: now.AddDate(-1, 0, 0), To: now}
	case RangeLast3Months:
		return TimeRange{From: now.AddDate(0, -3, 0), To: now}
	default:
		return TimeRange{From: now.AddDate(0, -3, 0), To: now}
	}
}
