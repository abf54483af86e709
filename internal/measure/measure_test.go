package measure

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewThreshold_Zero verifies zero is a valid threshold accepting only exact matches
func TestNewThreshold_Zero(t *testing.T) {
	m, err := NewThreshold(0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.MaxThreshold())
	assert.True(t, m.Accepts(0))
	assert.False(t, m.Accepts(0.5))
}

// TestNewThreshold_Negative verifies negative thresholds fail construction
func TestNewThreshold_Negative(t *testing.T) {
	_, err := NewThreshold(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidThreshold))
	assert.NotEmpty(t, errors.GetAllHints(err), "error should carry a hint for the caller")
}

// TestAccepts_Boundary verifies the threshold itself is accepted
func TestAccepts_Boundary(t *testing.T) {
	m, err := NewThreshold(2)
	require.NoError(t, err)

	assert.True(t, m.Accepts(1))
	assert.True(t, m.Accepts(2))
	assert.False(t, m.Accepts(2.0001))
}

// TestAccepts_Infinite verifies an infinite threshold accepts any finite distance
func TestAccepts_Infinite(t *testing.T) {
	m, err := NewThreshold(math.Inf(1))
	require.NoError(t, err)

	assert.True(t, m.Accepts(1e300))
}

// TestDistanceIsMeasure verifies distances apply their threshold like a bare Measure
func TestDistanceIsMeasure(t *testing.T) {
	var m Measure
	d, err := NewSoftDistance(3)
	require.NoError(t, err)
	m = d

	assert.Equal(t, 3.0, m.MaxThreshold())
	assert.True(t, m.Accepts(3))
	assert.False(t, m.Accepts(4))
}
