package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "proofpack/pkg/domain-errors"
)

func TestComputeHealth(t *testing.T) {
	tests := []struct {
		name         string
		c, e, q, r   float64
		wantOverall  int
		wantEligible bool
	}{
		{name: "weighted mix", c: 90, e: 80, q: 70, r: 100, wantOverall: 84, wantEligible: true},
		{name: "exactly at threshold", c: 70, e: 70, q: 70, r: 70, wantOverall: 70, wantEligible: true},
		{name: "just below threshold", c: 69, e: 69, q: 69, r: 69, wantOverall: 69, wantEligible: false},
		{name: "all zero", wantOverall: 0},
		{name: "all max", c: 100, e: 100, q: 100, r: 100, wantOverall: 100, wantEligible: true},
		// 69.5 rounds away from zero
		{name: "half rounds up", c: 70, e: 70, q: 70, r: 65, wantOverall: 70, wantEligible: true},
		{name: "below half rounds down", c: 70, e: 70, q: 67, r: 70, wantOverall: 69, wantEligible: false},
		{name: "fractional inputs", c: 85.5, e: 60.25, q: 90, r: 10, wantOverall: 71, wantEligible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ComputeHealth(tt.c, tt.e, tt.q, tt.r)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOverall, h.Overall)
			assert.Equal(t, tt.wantEligible, h.IsEligible())
			assert.Equal(t, tt.c, h.Completeness)
			assert.Equal(t, tt.r, h.Remediation)
		})
	}
}

func TestComputeHealth_Deterministic(t *testing.T) {
	first, err := ComputeHealth(33.3, 66.6, 99.9, 0.1)
	require.NoError(t, err)
	for range 100 {
		again, err := ComputeHealth(33.3, 66.6, 99.9, 0.1)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeHealth_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		c, e, q, r float64
		wantFields []string
	}{
		{name: "NaN completeness", c: math.NaN(), e: 50, q: 50, r: 50, wantFields: []string{"completeness"}},
		{name: "positive infinity", c: 50, e: math.Inf(1), q: 50, r: 50, wantFields: []string{"expiration"}},
		{name: "negative infinity", c: 50, e: 50, q: math.Inf(-1), r: 50, wantFields: []string{"quality"}},
		{name: "above range", c: 50, e: 50, q: 50, r: 100.01, wantFields: []string{"remediation"}},
		{name: "below range", c: -1, e: 50, q: 50, r: 50, wantFields: []string{"completeness"}},
		{name: "several at once", c: -1, e: 101, q: 50, r: math.NaN(), wantFields: []string{"completeness", "expiration", "remediation"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeHealth(tt.c, tt.e, tt.q, tt.r)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

			de, ok := dErrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantFields, de.FieldNames())
		})
	}
}

func TestIsEligible(t *testing.T) {
	assert.True(t, IsEligible(EligibilityThreshold))
	assert.True(t, IsEligible(100))
	assert.False(t, IsEligible(EligibilityThreshold-1))
	assert.False(t, IsEligible(0))
}

func TestWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, WeightCompleteness+WeightExpiration+WeightQuality+WeightRemediation, 1e-12)
}
