// Package measure scores how closely a profile matches a context and turns
// the score into an admission decision.
//
// Two families live here. Distance (strict) and SoftDistance (lenient) count
// trait disagreements between a profile and a context and double as a
// threshold Measure. DistanceFunction compares whole profiles, or a profile
// against a must-match / must-not-match constraint pair.
//
// Every value in this package is immutable after construction and safe for
// concurrent use.
package measure

import (
	"math"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidThreshold is returned when a measure is built with a
	// threshold outside [0, +Inf].
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrInvalidWeight is returned when a distance function is built with a
	// negative, infinite or NaN weight.
	ErrInvalidWeight = errors.New("invalid weight")
)

// Measure is a threshold-based acceptance policy around a distance score.
type Measure interface {
	// MaxThreshold returns the largest distance the measure accepts.
	MaxThreshold() float64

	// Accepts reports whether distance is within the threshold.
	Accepts(distance float64) bool
}

// Threshold is a Measure not bound to any scoring rule.
type Threshold struct {
	limit float64
}

// NewThreshold returns a Measure accepting distances up to limit.
func NewThreshold(limit float64) (Threshold, error) {
	if err := ValidateThreshold(limit); err != nil {
		return Threshold{}, err
	}
	return Threshold{limit: limit}, nil
}

// MaxThreshold implements Measure.
func (t Threshold) MaxThreshold() float64 { return t.limit }

// Accepts implements Measure.
func (t Threshold) Accepts(distance float64) bool { return distance <= t.limit }

// ValidateThreshold checks that limit is a usable threshold. Zero and +Inf
// are valid; negative values and NaN are not.
func ValidateThreshold(limit float64) error {
	if math.IsNaN(limit) || limit < 0 {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidThreshold, "threshold %v", limit),
			"thresholds must be non-negative; use 0 to accept only exact matches",
		)
	}
	return nil
}
