// Package score computes the weighted compliance health of a proof pack.
//
// The engine is pure: the same four sub-scores always produce the same
// PackHealth. Sub-scores arrive already computed; this package only validates,
// weighs and rounds them.
package score

import (
	"fmt"
	"math"

	dErrors "proofpack/pkg/domain-errors"
)

// EligibilityThreshold is the minimum overall score for directory visibility,
// introduction requests and unqualified approval.
const EligibilityThreshold = 70

// Category weights. They sum to 1.0.
const (
	WeightCompleteness = 0.4
	WeightExpiration   = 0.3
	WeightQuality      = 0.2
	WeightRemediation  = 0.1
)

const (
	minSubScore = 0
	maxSubScore = 100
)

// PackHealth is the cached result of a computation. Overall is derived and is
// never set independently of the four sub-scores.
type PackHealth struct {
	Completeness float64 `json:"completeness"`
	Expiration   float64 `json:"expiration"`
	Quality      float64 `json:"quality"`
	Remediation  float64 `json:"remediation"`
	Overall      int     `json:"overall"`
}

// IsEligible reports whether the overall score clears EligibilityThreshold.
func (h PackHealth) IsEligible() bool {
	return IsEligible(h.Overall)
}

// IsEligible reports whether score clears EligibilityThreshold.
func IsEligible(score int) bool {
	return score >= EligibilityThreshold
}

// ComputeHealth validates the sub-scores and derives the overall score.
// Every invalid input is reported, keyed by sub-score name.
func ComputeHealth(completeness, expiration, quality, remediation float64) (PackHealth, error) {
	inputs := []struct {
		name  string
		value float64
	}{
		{"completeness", completeness},
		{"expiration", expiration},
		{"quality", quality},
		{"remediation", remediation},
	}

	var verr *dErrors.Error
	for _, in := range inputs {
		if detail := checkSubScore(in.value); detail != "" {
			if verr == nil {
				verr = dErrors.New(dErrors.CodeValidation, "invalid sub-score")
			}
			verr.WithField(in.name, detail)
		}
	}
	if verr != nil {
		return PackHealth{}, verr
	}

	weighted := completeness*WeightCompleteness +
		expiration*WeightExpiration +
		quality*WeightQuality +
		remediation*WeightRemediation

	return PackHealth{
		Completeness: completeness,
		Expiration:   expiration,
		Quality:      quality,
		Remediation:  remediation,
		Overall:      clamp(roundHalfAwayFromZero(weighted)),
	}, nil
}

func checkSubScore(v float64) string {
	switch {
	case math.IsNaN(v):
		return "must be a number, got NaN"
	case math.IsInf(v, 0):
		return fmt.Sprintf("must be finite, got %v", v)
	case v < minSubScore || v > maxSubScore:
		return fmt.Sprintf("must be between %d and %d, got %g", minSubScore, maxSubScore, v)
	}
	return ""
}

// roundHalfAwayFromZero tolerates binary representation error so that sums
// like 0.4*x landing a hair below .5 still round up.
func roundHalfAwayFromZero(v float64) int {
	const epsilon = 1e-9
	if v < 0 {
		return -int(math.Floor(-v + 0.5 + epsilon))
	}
	return int(math.Floor(v + 0.5 + epsilon))
}

func clamp(v int) int {
	if v < minSubScore {
		return minSubScore
	}
	if v > maxSubScore {
		return maxSubScore
	}
	return v
}
