// Package holon selects the belief profiles that fit an observed context.
package holon

import (
	"context"
	"reflect"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scrypster/holons/internal/logging"
	"github.com/scrypster/holons/internal/measure"
	"github.com/scrypster/holons/pkg/types"
)

// DefaultWorkers bounds concurrent scoring when no limit is configured.
const DefaultWorkers = 4

// Match is a candidate profile the scorer accepted for a context.
type Match struct {
	Profile types.Profile
	Score   int
}

// Matcher ranks candidate profiles against a context through a scorer.
type Matcher struct {
	scorer  measure.Scorer
	workers int
	logger  *zap.SugaredLogger
}

// NewMatcher returns a matcher. workers < 1 means DefaultWorkers; a nil
// logger discards output.
func NewMatcher(scorer measure.Scorer, workers int, logger *zap.SugaredLogger) (*Matcher, error) {
	if isNil(scorer) {
		return nil, errors.New("holon: scorer is required")
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Matcher{
		scorer:  scorer,
		workers: workers,
		logger:  logging.Named(logger, "matcher"),
	}, nil
}

// Workers returns the scoring concurrency limit.
func (m *Matcher) Workers() int { return m.workers }

// Rank scores every candidate against c and returns the accepted ones,
// best first. Ties are broken by profile name. Scoring stops early when ctx
// is cancelled.
func (m *Matcher) Rank(ctx context.Context, candidates []types.Profile, c types.Context) ([]Match, error) {
	scores := make([]int, len(candidates))
	accepted := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i], accepted[i] = m.scorer.Judge(candidates[i], c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrapf(err, "rank %d profiles against context %q", len(candidates), c.Name)
	}

	var matches []Match
	for i, ok := range accepted {
		if ok {
			matches = append(matches, Match{Profile: candidates[i], Score: scores[i]})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		return matches[i].Profile.Name < matches[j].Profile.Name
	})

	m.logger.Debugw("ranked profiles",
		logging.FieldContext, c.Name,
		"candidates", len(candidates),
		logging.FieldCount, len(matches))
	return matches, nil
}

// Best returns the closest accepted profile. It reports false when no
// candidate is within the threshold.
func (m *Matcher) Best(ctx context.Context, candidates []types.Profile, c types.Context) (Match, bool, error) {
	matches, err := m.Rank(ctx, candidates, c)
	if err != nil {
		return Match{}, false, err
	}
	if len(matches) == 0 {
		return Match{}, false, nil
	}
	best := matches[0]
	m.logger.Debugw("best profile",
		logging.FieldContext, c.Name,
		logging.FieldProfile, best.Profile.Name,
		logging.FieldScore, best.Score)
	return best, true, nil
}

// isNil also catches a typed nil pointer stored in the interface.
func isNil(scorer measure.Scorer) bool {
	if scorer == nil {
		return true
	}
	v := reflect.ValueOf(scorer)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
