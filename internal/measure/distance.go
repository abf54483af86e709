package measure

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/scrypster/holons/pkg/types"
)

// Kind selects the scoring rule of a Distance.
type Kind int

const (
	// KindStrict penalizes every profile trait the context does not confirm.
	KindStrict Kind = iota

	// KindSoft penalizes only context traits that disagree with the profile.
	KindSoft
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStrict:
		return "strict"
	case KindSoft:
		return "soft"
	default:
		return "unknown"
	}
}

// ParseKind parses "strict" or "soft" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return KindStrict, nil
	case "soft":
		return KindSoft, nil
	default:
		return 0, errors.Newf("unknown distance kind %q (want strict or soft)", s)
	}
}

// Scorer scores a profile against a context and judges the score.
// *Distance is the only implementation; the interface exists so callers can
// hold either variant without caring which.
type Scorer interface {
	Measure
	Score(profile types.Profile, context types.Context) int
	Judge(profile types.Profile, context types.Context) (int, bool)
}

// Distance is the attribute-set similarity scorer. A distance of 0 means the
// profile matches the context perfectly; larger values mean less similarity.
//
// The strict variant (NewDistance) counts profile traits absent from the
// context, so a context that says nothing about a trait is treated as
// contradicting it. The soft variant (NewSoftDistance) counts only context
// traits the profile does not hold, so omission is never penalized.
type Distance struct {
	kind         Kind
	maxThreshold float64
}

var _ Scorer = (*Distance)(nil)

// NewDistance returns a strict distance accepting scores up to maxThreshold.
func NewDistance(maxThreshold float64) (*Distance, error) {
	return NewDistanceOfKind(KindStrict, maxThreshold)
}

// NewSoftDistance returns a lenient distance accepting scores up to maxThreshold.
func NewSoftDistance(maxThreshold float64) (*Distance, error) {
	return NewDistanceOfKind(KindSoft, maxThreshold)
}

// NewDistanceOfKind returns a distance of the given kind.
func NewDistanceOfKind(kind Kind, maxThreshold float64) (*Distance, error) {
	if kind != KindStrict && kind != KindSoft {
		return nil, errors.Newf("unknown distance kind %d", int(kind))
	}
	if err := ValidateThreshold(maxThreshold); err != nil {
		return nil, err
	}
	return &Distance{kind: kind, maxThreshold: maxThreshold}, nil
}

// DefaultDistance returns a strict distance that accepts only exact matches.
func DefaultDistance() *Distance {
	return &Distance{kind: KindStrict}
}

// DefaultSoftDistance returns a soft distance that accepts only contexts with
// no contradicting trait.
func DefaultSoftDistance() *Distance {
	return &Distance{kind: KindSoft}
}

// Kind returns the scoring rule.
func (d *Distance) Kind() Kind { return d.kind }

// MaxThreshold implements Measure.
func (d *Distance) MaxThreshold() float64 { return d.maxThreshold }

// Accepts implements Measure.
func (d *Distance) Accepts(distance float64) bool { return distance <= d.maxThreshold }

// Score returns the number of disagreeing traits under the distance's rule.
func (d *Distance) Score(profile types.Profile, context types.Context) int {
	if d.kind == KindSoft {
		return softScore(profile.TraitSet, context.TraitSet)
	}
	return strictScore(profile.TraitSet, context.TraitSet)
}

// Judge scores profile against context and reports whether the score is
// accepted.
func (d *Distance) Judge(profile types.Profile, context types.Context) (int, bool) {
	score := d.Score(profile, context)
	return score, d.Accepts(float64(score))
}

// strictScore is |P \ C|.
func strictScore(profile, context types.TraitSet) int {
	n := 0
	profile.Each(func(t types.Trait) {
		if !context.Contains(t) {
			n++
		}
	})
	return n
}

// softScore is |C| - |C ∩ P|.
func softScore(profile, context types.TraitSet) int {
	common := 0
	context.Each(func(t types.Trait) {
		if profile.Contains(t) {
			common++
		}
	})
	return context.Len() - common
}
