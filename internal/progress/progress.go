// Package progress implements the aggregation and scoring engine behind
// the parent and teacher dashboards. Every function is a pure computation
// over records fetched by the persistence layer: no I/O, no clock access,
// no state between calls. Degenerate inputs (empty collections, zero
// denominators, ungraded submissions) resolve to documented defaults and
// never produce errors.
package progress

import "math"

// Weights blends attendance rate and average assessment score into a
// single 0-100 progress value. The pair must sum to 1.
type Weights struct {
	Attendance float64
	Score      float64
}

// DefaultWeights is the canonical weighting applied when callers do not
// configure their own.
var DefaultWeights = Weights{Attendance: 0.4, Score: 0.6}

const weightSumTolerance = 1e-9

// Valid reports whether both weights are within [0, 1] and sum to 1.
func (w Weights) Valid() bool {
	if w.Attendance < 0 || w.Attendance > 1 || w.Score < 0 || w.Score > 1 {
		return false
	}
	return math.Abs(w.Attendance+w.Score-1) <= weightSumTolerance
}

// WeightedProgress combines an attendance rate and an average score into
// a rounded progress value clamped to [0, 100]. It is monotonically
// non-decreasing in both inputs for fixed weights.
func WeightedProgress(attendanceRate int, avgScore float64, w Weights) int {
	raw := float64(attendanceRate)*w.Attendance + avgScore*w.Score
	return int(math.Round(clamp(raw, 0, 100)))
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
