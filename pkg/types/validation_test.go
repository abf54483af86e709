package types_test

import (
	"testing"

	"github.com/scrypster/holons/pkg/types"
)

// TestIsValidReferentType_AllValidTypes tests that every declared referent type is recognized
func TestIsValidReferentType_AllValidTypes(t *testing.T) {
	validTypes := []types.ReferentType{
		types.ReferentPerson,
		types.ReferentAnimal,
		types.ReferentObject,
		types.ReferentPlace,
		types.ReferentGroup,
		types.ReferentConcept,
		types.ReferentOther,
	}

	for _, referentType := range validTypes {
		t.Run("valid_"+string(referentType), func(t *testing.T) {
			if !types.IsValidReferentType(referentType) {
				t.Errorf("IsValidReferentType(%q) = false, want true", referentType)
			}
		})
	}
}

// TestIsValidReferentType_InvalidTypes tests that unknown referent types are rejected
func TestIsValidReferentType_InvalidTypes(t *testing.T) {
	invalidTypes := []types.ReferentType{
		"",        // empty string
		"PERSON",  // uppercase
		"Person",  // mixed case
		"unknown", // unknown type
		" person", // leading whitespace
		"person ", // trailing whitespace
		"per",     // prefix of valid type
		"123",     // numeric
	}

	for _, invalidType := range invalidTypes {
		t.Run("invalid_"+string(invalidType), func(t *testing.T) {
			if types.IsValidReferentType(invalidType) {
				t.Errorf("IsValidReferentType(%q) = true, want false", invalidType)
			}
		})
	}
}
