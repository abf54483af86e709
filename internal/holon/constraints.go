package holon

import (
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/scrypster/holons/internal/logging"
	"github.com/scrypster/holons/internal/measure"
	"github.com/scrypster/holons/pkg/types"
)

// CompositeMatch is a candidate profile within the threshold of a
// constraint pair.
type CompositeMatch struct {
	Profile  types.Profile
	Distance float64
}

// ConstraintMatcher ranks profiles against must-match / must-not-match
// constraints through a DistanceFunction.
type ConstraintMatcher struct {
	fn        measure.DistanceFunction
	threshold measure.Measure
	logger    *zap.SugaredLogger
}

// NewConstraintMatcher returns a matcher keeping profiles whose composite
// distance threshold accepts.
func NewConstraintMatcher(fn measure.DistanceFunction, threshold measure.Measure, logger *zap.SugaredLogger) (*ConstraintMatcher, error) {
	if fn == nil {
		return nil, errors.New("holon: distance function is required")
	}
	if threshold == nil {
		return nil, errors.New("holon: threshold is required")
	}
	return &ConstraintMatcher{
		fn:        fn,
		threshold: threshold,
		logger:    logging.Named(logger, "constraint_matcher"),
	}, nil
}

// Rank returns the accepted candidates, closest first. Ties are broken by
// profile name.
func (m *ConstraintMatcher) Rank(candidates []types.Profile, c measure.Constraints) []CompositeMatch {
	var matches []CompositeMatch
	for _, p := range candidates {
		d := m.fn.Composite(p, c)
		if m.threshold.Accepts(d) {
			matches = append(matches, CompositeMatch{Profile: p, Distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Profile.Name < matches[j].Profile.Name
	})

	m.logger.Debugw("ranked profiles against constraints",
		"candidates", len(candidates),
		"constraints", c.Len(),
		logging.FieldCount, len(matches))
	return matches
}

// Nearest returns the profiles closest to target by full-profile distance,
// keeping those the threshold accepts. target itself is skipped by name.
func (m *ConstraintMatcher) Nearest(candidates []types.Profile, target types.Profile) []CompositeMatch {
	var matches []CompositeMatch
	for _, p := range candidates {
		if p.Name == target.Name {
			continue
		}
		d := m.fn.Implementation(target, p)
		if m.threshold.Accepts(d) {
			matches = append(matches, CompositeMatch{Profile: p, Distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Profile.Name < matches[j].Profile.Name
	})
	return matches
}
