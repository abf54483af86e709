// Package semantic resolves observations and human-readable names into
// canonical individual models.
//
// A Registry holds at most one IndividualModel per Identifier. Models and
// lexicon entries are only ever added, so the registry grows monotonically
// for the lifetime of the owning memory layer.
package semantic

import (
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/scrypster/holons/internal/logging"
	"github.com/scrypster/holons/pkg/types"
)

// Registry is the collection of individual models plus a case-insensitive
// lexicon mapping names to identifiers. It is safe for concurrent use.
//
// Models passed in are copied on insert. Models handed out are owned by the
// registry and must be treated as read-only.
type Registry struct {
	mu      sync.RWMutex
	models  map[types.Identifier]*types.IndividualModel
	lexicon map[string]types.Identifier
	logger  *zap.SugaredLogger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *zap.SugaredLogger) *Registry {
	return &Registry{
		models:  make(map[types.Identifier]*types.IndividualModel),
		lexicon: make(map[string]types.Identifier),
		logger:  logging.Named(logger, "registry"),
	}
}

// NewRegistryFrom creates a registry seeded with models. Models sharing an
// identifier collapse to the first one given.
func NewRegistryFrom(logger *zap.SugaredLogger, models ...*types.IndividualModel) *Registry {
	r := NewRegistry(logger)
	r.CaptureObservations(models...)
	return r
}

// NormalizeName case-folds a name for lexicon lookup.
// Whitespace is significant.
func NormalizeName(name string) string {
	return cases.Fold().String(name)
}

// IsObservationRepresented reports whether a model exists for the
// observation's identifier.
func (r *Registry) IsObservationRepresented(obs types.Observation) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.models[obs.Identifier]
	return ok
}

// Add inserts a copy of model unless one with the same identifier is
// already present. It reports whether the model was inserted.
func (r *Registry) Add(model *types.IndividualModel) bool {
	if model == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertCopyLocked(model)
}

// GetByIdentifier returns the model bound to id.
func (r *Registry) GetByIdentifier(id types.Identifier) (*types.IndividualModel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[id]
	return model, ok
}

// GetByName resolves name through the lexicon. It reports false when the
// name is unknown or its identifier has no model.
func (r *Registry) GetByName(name string) (*types.IndividualModel, bool) {
	key := NormalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.lexicon[key]
	if !ok {
		return nil, false
	}
	model, ok := r.models[id]
	return model, ok
}

// ResolveName returns the identifier a name is bound to.
func (r *Registry) ResolveName(name string) (types.Identifier, bool) {
	key := NormalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.lexicon[key]
	return id, ok
}

// BindName maps name to id, replacing any previous binding of the name.
// If id has no model yet, a placeholder model typed as id.Type is created:
// naming a referent is enough to make it known.
func (r *Registry) BindName(id types.Identifier, name string) {
	key := NormalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.lexicon[key]; ok && prev != id {
		r.logger.Debugw("name rebound",
			logging.FieldName, key,
			"previous", prev.String(),
			logging.FieldIdentifier, id.String())
	}
	r.lexicon[key] = id

	if _, ok := r.models[id]; !ok {
		r.insertLocked(id, types.NewIndividualModel(id, id.Type))
	}
}

// NamesFor returns every normalized name bound to id, sorted.
func (r *Registry) NamesFor(id types.Identifier) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, bound := range r.lexicon {
		if bound == id {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// CaptureObservation returns the model for the observation's identifier,
// creating it on first sighting. Exactly one model is ever created per
// identifier, also under concurrent calls.
//
// A new model takes the observation's type when it is a known referent
// type, then the identifier's, and falls back to ReferentOther.
func (r *Registry) CaptureObservation(obs types.Observation) *types.IndividualModel {
	r.mu.RLock()
	model, ok := r.models[obs.Identifier]
	r.mu.RUnlock()
	if ok {
		return model
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another writer may have created it between the locks.
	if model, ok := r.models[obs.Identifier]; ok {
		return model
	}
	model = types.NewIndividualModel(obs.Identifier, referentTypeOf(obs))
	r.insertLocked(obs.Identifier, model)
	return model
}

func referentTypeOf(obs types.Observation) types.ReferentType {
	switch {
	case types.IsValidReferentType(obs.Type):
		return obs.Type
	case types.IsValidReferentType(obs.Identifier.Type):
		return obs.Identifier.Type
	default:
		return types.ReferentOther
	}
}

// CaptureObservations merges copies of models into the registry in a single
// pass, skipping nil models and any whose identifier is already present. It
// returns the number of models inserted.
func (r *Registry) CaptureObservations(models ...*types.IndividualModel) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, model := range models {
		if model != nil && r.insertCopyLocked(model) {
			inserted++
		}
	}
	if inserted > 0 {
		r.logger.Debugw("merged models",
			logging.FieldCount, inserted,
			"offered", len(models))
	}
	return inserted
}

// Len returns the number of models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.models)
}

// Models returns a snapshot of all models ordered by identifier.
func (r *Registry) Models() []*types.IndividualModel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]types.Identifier, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	out := make([]*types.IndividualModel, len(ids))
	for i, id := range ids {
		out[i] = r.models[id]
	}
	return out
}

// insertCopyLocked stores a copy of a caller-owned model. Caller holds r.mu.
func (r *Registry) insertCopyLocked(model *types.IndividualModel) bool {
	if _, exists := r.models[model.Identifier]; exists {
		return false
	}
	stored := *model
	return r.insertLocked(stored.Identifier, &stored)
}

// insertLocked stores model under id if id is new. Caller holds r.mu.
func (r *Registry) insertLocked(id types.Identifier, model *types.IndividualModel) bool {
	if _, exists := r.models[id]; exists {
		return false
	}
	r.models[id] = model
	r.logger.Debugw("individual model registered",
		logging.FieldIdentifier, id.String(),
		logging.FieldModelID, model.ID)
	return true
}
