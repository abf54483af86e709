package measure

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/scrypster/holons/pkg/types"
)

// Constraints describes a context as confirmed-present and confirmed-absent
// traits. The two sets are expected to be disjoint; a trait in both is
// counted independently by each rule.
type Constraints struct {
	MustMatch    types.TraitSet
	MustNotMatch types.TraitSet
}

// NewConstraints builds a constraint pair.
func NewConstraints(mustMatch, mustNotMatch []types.Trait) Constraints {
	return Constraints{
		MustMatch:    types.NewTraitSet(mustMatch...),
		MustNotMatch: types.NewTraitSet(mustNotMatch...),
	}
}

// Len returns the total number of constraints.
func (c Constraints) Len() int {
	return c.MustMatch.Len() + c.MustNotMatch.Len()
}

// Failures counts the must-match traits missing from profile and the
// must-not-match traits present in it.
func (c Constraints) Failures(profile types.Profile) (misses, violations int) {
	c.MustMatch.Each(func(t types.Trait) {
		if !profile.Contains(t) {
			misses++
		}
	})
	c.MustNotMatch.Each(func(t types.Trait) {
		if profile.Contains(t) {
			violations++
		}
	})
	return misses, violations
}

// DistanceFunction compares profiles for holon-style composite matching.
// Results are non-negative; 0 means identical or fully satisfied.
type DistanceFunction interface {
	// Implementation returns the distance between two full profiles.
	Implementation(first, second types.Profile) float64

	// Composite returns the distance between a profile and a constraint pair.
	// It is non-decreasing in both the miss and the violation count.
	Composite(first types.Profile, second Constraints) float64
}

// MismatchFunction counts disagreements, weighting constraint misses and
// violations separately.
type MismatchFunction struct {
	matchWeight     float64
	violationWeight float64
}

var _ DistanceFunction = MismatchFunction{}

// NewMismatchFunction returns a MismatchFunction with the given weights.
// Weights must be finite and non-negative.
func NewMismatchFunction(matchWeight, violationWeight float64) (MismatchFunction, error) {
	if err := validateWeight("match", matchWeight); err != nil {
		return MismatchFunction{}, err
	}
	if err := validateWeight("violation", violationWeight); err != nil {
		return MismatchFunction{}, err
	}
	return MismatchFunction{matchWeight: matchWeight, violationWeight: violationWeight}, nil
}

// DefaultMismatchFunction weights misses and violations equally.
func DefaultMismatchFunction() MismatchFunction {
	return MismatchFunction{matchWeight: 1, violationWeight: 1}
}

// Implementation returns the size of the symmetric difference of the two
// profiles. It is symmetric.
func (f MismatchFunction) Implementation(first, second types.Profile) float64 {
	return float64(symmetricDifference(first.TraitSet, second.TraitSet))
}

// Composite returns matchWeight*misses + violationWeight*violations.
func (f MismatchFunction) Composite(first types.Profile, second Constraints) float64 {
	misses, violations := second.Failures(first)
	return f.matchWeight*float64(misses) + f.violationWeight*float64(violations)
}

// JaccardFunction measures distance as the fraction of disagreement, always
// within [0, 1].
type JaccardFunction struct{}

var _ DistanceFunction = JaccardFunction{}

// Implementation returns 1 - |A∩B|/|A∪B|, or 0 when both profiles are empty.
func (JaccardFunction) Implementation(first, second types.Profile) float64 {
	common := intersection(first.TraitSet, second.TraitSet)
	union := first.Len() + second.Len() - common
	if union == 0 {
		return 0
	}
	return 1 - float64(common)/float64(union)
}

// Composite returns the failed share of all constraints, or 0 when there are
// no constraints.
func (JaccardFunction) Composite(first types.Profile, second Constraints) float64 {
	total := second.Len()
	if total == 0 {
		return 0
	}
	misses, violations := second.Failures(first)
	return float64(misses+violations) / float64(total)
}

func intersection(a, b types.TraitSet) int {
	if a.Len() > b.Len() {
		a, b = b, a
	}
	n := 0
	a.Each(func(t types.Trait) {
		if b.Contains(t) {
			n++
		}
	})
	return n
}

func symmetricDifference(a, b types.TraitSet) int {
	return a.Len() + b.Len() - 2*intersection(a, b)
}

func validateWeight(name string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return errors.Wrapf(ErrInvalidWeight, "%s weight %v", name, w)
	}
	return nil
}
