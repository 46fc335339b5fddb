package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedProgressDefaultWeights(t *testing.T) {
	// 80*0.4 + 80*0.6 = 80
	assert.Equal(t, 80, WeightedProgress(80, 80, DefaultWeights))
	// 80*0.4 + 90*0.6 = 86
	assert.Equal(t, 86, WeightedProgress(80, 90, DefaultWeights))
	assert.Equal(t, 0, WeightedProgress(0, 0, DefaultWeights))
	assert.Equal(t, 100, WeightedProgress(100, 100, DefaultWeights))
}

func TestWeightedProgressClamps(t *testing.T) {
	assert.Equal(t, 100, WeightedProgress(100, 120, DefaultWeights))
	assert.Equal(t, 0, WeightedProgress(0, -5, DefaultWeights))
}

func TestWeightedProgressMonotonic(t *testing.T) {
	prev := -1
	for rate := 0; rate <= 100; rate += 5 {
		p := WeightedProgress(rate, 50, DefaultWeights)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}

	prev = -1
	for score := 0; score <= 100; score += 5 {
		p := WeightedProgress(50, float64(score), DefaultWeights)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestWeightedProgressEvenWeights(t *testing.T) {
	even := Weights{Attendance: 0.5, Score: 0.5}
	assert.Equal(t, 75, WeightedProgress(50, 100, even))
}

func TestWeightsValid(t *testing.T) {
	assert.True(t, DefaultWeights.Valid())
	assert.True(t, Weights{Attendance: 0.5, Score: 0.5}.Valid())
	assert.True(t, Weights{Attendance: 0, Score: 1}.Valid())

	assert.False(t, Weights{Attendance: 0.5, Score: 0.6}.Valid())
	assert.False(t, Weights{Attendance: -0.1, Score: 1.1}.Valid())
	assert.False(t, Weights{}.Valid())
}
