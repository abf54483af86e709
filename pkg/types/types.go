// Package types defines the core data structures of the semantic memory layer.
// These types represent traits, profiles and contexts built from traits, and
// the identifiers and individual models that stand for real-world referents.
package types

// ReferentType classifies what kind of real-world thing an Identifier names.
type ReferentType string

// Referent type constants
const (
	// Living referents
	ReferentPerson ReferentType = "person"
	ReferentAnimal ReferentType = "animal"

	// Physical referents
	ReferentObject ReferentType = "object"
	ReferentPlace  ReferentType = "place"

	// Abstract referents
	ReferentGroup   ReferentType = "group"
	ReferentConcept ReferentType = "concept"

	// ReferentOther is used when the observer could not classify the referent
	ReferentOther ReferentType = "other"
)

// ValidReferentTypes is a slice of all valid referent types for validation
var ValidReferentTypes = []ReferentType{
	ReferentPerson,
	ReferentAnimal,
	ReferentObject,
	ReferentPlace,
	ReferentGroup,
	ReferentConcept,
	ReferentOther,
}

// IsValidReferentType checks if the given referent type is valid
func IsValidReferentType(referentType ReferentType) bool {
	for _, validType := range ValidReferentTypes {
		if validType == referentType {
			return true
		}
	}
	return false
}
