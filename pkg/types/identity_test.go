package types_test

import (
	"strings"
	"testing"

	"github.com/scrypster/holons/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIdentifier_ValueEquality verifies identifiers compare by key and type
func TestIdentifier_ValueEquality(t *testing.T) {
	a := types.NewIdentifier("obj-42", types.ReferentAnimal)
	b := types.NewIdentifier("obj-42", types.ReferentAnimal)
	c := types.NewIdentifier("obj-42", types.ReferentObject)

	assert.True(t, a == b)
	assert.False(t, a == c, "same key with a different referent type is a different identifier")

	index := map[types.Identifier]int{a: 1}
	assert.Equal(t, 1, index[b])
	assert.Equal(t, "animal/obj-42", a.String())
}

// TestIdentifier_Less verifies ordering by type then key
func TestIdentifier_Less(t *testing.T) {
	animal := types.NewIdentifier("z", types.ReferentAnimal)
	person := types.NewIdentifier("a", types.ReferentPerson)
	person2 := types.NewIdentifier("b", types.ReferentPerson)

	assert.True(t, animal.Less(person))
	assert.True(t, person.Less(person2))
	assert.False(t, person2.Less(person))
	assert.False(t, person.Less(person))
}

// TestNewIndividualModel verifies the model is stamped with a handle and timestamp
func TestNewIndividualModel(t *testing.T) {
	id := types.NewIdentifier("obj-42", types.ReferentAnimal)
	m := types.NewIndividualModel(id, types.ReferentAnimal)

	require.NotNil(t, m)
	assert.True(t, strings.HasPrefix(m.ID, "im:"), "ID must carry the im: prefix, got %q", m.ID)
	assert.Equal(t, id, m.Identifier)
	assert.Equal(t, types.ReferentAnimal, m.Type)
	assert.False(t, m.CreatedAt.IsZero())

	other := types.NewIndividualModel(id, types.ReferentAnimal)
	assert.NotEqual(t, m.ID, other.ID, "handles must be unique")
	assert.True(t, m.SameReferent(other), "models sharing an identifier stand for the same referent")
}

// TestSameReferent_Nil verifies nil handling
func TestSameReferent_Nil(t *testing.T) {
	var nilModel *types.IndividualModel
	m := types.NewIndividualModel(types.NewIdentifier("x", types.ReferentOther), types.ReferentOther)

	assert.True(t, nilModel.SameReferent(nil))
	assert.False(t, nilModel.SameReferent(m))
	assert.False(t, m.SameReferent(nil))
}

// TestNewObservation verifies the observation inherits the identifier's type
func TestNewObservation(t *testing.T) {
	id := types.NewIdentifier("p-1", types.ReferentPerson)
	obs := types.NewObservation(id)

	assert.Equal(t, id, obs.Identifier)
	assert.Equal(t, types.ReferentPerson, obs.Type)
	assert.False(t, obs.ObservedAt.IsZero())
}
