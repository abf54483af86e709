package types

import (
	"time"

	"github.com/google/uuid"
)

// Identifier is a unique, typed key naming a real-world referent.
// It is a value type: two identifiers are equal when key and type are equal,
// so it can be used directly as a map key.
type Identifier struct {
	Key  string       `json:"key" yaml:"key"`
	Type ReferentType `json:"type" yaml:"type"`
}

// NewIdentifier returns the identifier key of the given referent type.
func NewIdentifier(key string, referentType ReferentType) Identifier {
	return Identifier{Key: key, Type: referentType}
}

// String renders the identifier as type/key.
func (id Identifier) String() string {
	return string(id.Type) + "/" + id.Key
}

// Less orders identifiers by type then key.
func (id Identifier) Less(other Identifier) bool {
	if id.Type != other.Type {
		return id.Type < other.Type
	}
	return id.Key < other.Key
}

// Observation is an episodic event that saw some referent. Only the parts
// used for identity resolution are carried here.
type Observation struct {
	Identifier Identifier   `json:"identifier"`
	Type       ReferentType `json:"type"`        // Referent type as perceived by the observer
	ObservedAt time.Time    `json:"observed_at"` // When the referent was seen
}

// NewObservation records a sighting of id now, typed as id.Type.
func NewObservation(id Identifier) Observation {
	return Observation{Identifier: id, Type: id.Type, ObservedAt: time.Now()}
}

// IndividualModel is the canonical internal representation of one referent.
// A registry holds at most one model per Identifier; models are never
// mutated after creation.
type IndividualModel struct {
	ID         string       `json:"id"` // Internal handle (format: im:uuid), not part of equality
	Identifier Identifier   `json:"identifier"`
	Type       ReferentType `json:"type"`
	CreatedAt  time.Time    `json:"created_at"`
}

// NewIndividualModel creates a model bound to id.
func NewIndividualModel(id Identifier, referentType ReferentType) *IndividualModel {
	return &IndividualModel{
		ID:         "im:" + uuid.NewString(),
		Identifier: id,
		Type:       referentType,
		CreatedAt:  time.Now(),
	}
}

// SameReferent reports whether m and other stand for the same referent.
func (m *IndividualModel) SameReferent(other *IndividualModel) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Identifier == other.Identifier
}
