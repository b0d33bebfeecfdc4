package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-9)
}

func TestStandardDeviation(t *testing.T) {
	assert.Equal(t, 0.0, StandardDeviation([]float64{3}))
	assert.InDelta(t, math.Sqrt(2.5), StandardDeviation([]float64{1, 2, 3, 4, 5}), 1e-9)
}

func TestMinMax(t *testing.T) {
	data := []float64{3, -1, 7, 2}
	assert.Equal(t, 7.0, Max(data))
	assert.Equal(t, -1.0, Min(data))
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 0.0, Min(nil))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 7.0, Clamp(9.2, 0, 7))
	assert.Equal(t, 0.0, Clamp(-1, 0, 7))
	assert.Equal(t, 3.5, Clamp(3.5, 0, 7))

	assert.Equal(t, 1.0, Probability(1.04))
	assert.Equal(t, 0.0, Probability(-0.2))
	assert.Equal(t, 0.6, Probability(0.6))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2, Round(2.5))
	assert.Equal(t, 2, Round(2.49))
	assert.Equal(t, 4, Round(3.6))
}
