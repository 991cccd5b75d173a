package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeString(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{Range{R1: 1, C1: 1, R2: 5, C2: 3}, "A1:C5"},
		{Range{R1: 2, C1: 27, R2: 2, C2: 27}, "AA2:AA2"},
		{Range{R1: 10, C1: 4, R2: 20, C2: 8}, "D10:H20"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.r.String())
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("A1:C5")
	require.NoError(t, err)
	assert.Equal(t, Range{R1: 1, C1: 1, R2: 5, C2: 3}, r)

	r, err = ParseRange("$B$2:$D$4")
	require.NoError(t, err)
	assert.Equal(t, Range{R1: 2, C1: 2, R2: 4, C2: 4}, r)

	// Single cell
	r, err = ParseRange("AA10")
	require.NoError(t, err)
	assert.Equal(t, Range{R1: 10, C1: 27, R2: 10, C2: 27}, r)

	_, err = ParseRange("not a range")
	assert.Error(t, err)
}

func TestRangeContains(t *testing.T) {
	r := Range{R1: 2, C1: 2, R2: 4, C2: 4}

	assert.True(t, r.Contains(2, 2))
	assert.True(t, r.Contains(4, 4))
	assert.True(t, r.Contains(3, 3))
	assert.False(t, r.Contains(1, 3))
	assert.False(t, r.Contains(5, 3))
	assert.False(t, r.Contains(3, 1))
	assert.False(t, r.Contains(3, 5))
}

func TestRangeDimensions(t *testing.T) {
	r := Range{R1: 3, C1: 2, R2: 7, C2: 2}
	assert.Equal(t, 5, r.Height())
	assert.Equal(t, 1, r.Width())
}
