package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestComputeExcellent(t *testing.T) {
	s := Compute(f(90), f(99), f(11), f(92))
	require.NotNil(t, s.Value)
	assert.GreaterOrEqual(t, *s.Value, 90.0)
	assert.InDelta(t, 94.5, *s.Value, 1e-9)
	assert.Equal(t, Excellent, s.Band)
	assert.NotEmpty(t, s.Message)
}

func TestComputeNoData(t *testing.T) {
	s := Compute(nil, nil, nil, nil)
	assert.Nil(t, s.Value)
	assert.Equal(t, NoData, s.Band)
}

func TestComputePartialIsNotRescaled(t *testing.T) {
	s := Compute(f(60), nil, nil, nil)
	require.NotNil(t, s.Value)
	assert.InDelta(t, 24.0, *s.Value, 1e-9)
	assert.Equal(t, Inadequate, s.Band)
}

func TestMoistureSteps(t *testing.T) {
	tests := []struct {
		moisture float64
		want     float64
	}{
		{10, 15},
		{12, 15},
		{12.5, 10},
		{13, 10},
		{14, 5},
		{14.1, 0},
		{18, 0},
	}
	for _, tt := range tests {
		s := Compute(nil, nil, f(tt.moisture), nil)
		require.NotNil(t, s.Value)
		assert.Equal(t, tt.want, *s.Value, "moisture %.1f", tt.moisture)
	}
}

func TestClassifyBands(t *testing.T) {
	assert.Equal(t, Excellent, Classify(90))
	assert.Equal(t, Good, Classify(89.9))
	assert.Equal(t, Good, Classify(80))
	assert.Equal(t, Acceptable, Classify(70))
	assert.Equal(t, Deficient, Classify(60))
	assert.Equal(t, Inadequate, Classify(59.9))
}
