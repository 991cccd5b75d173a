package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferences(t *testing.T) {
	tests := []struct {
		formula string
		want    []string
	}{
		{"=A1+B2", []string{"A1", "B2"}},
		{"=SUM(B2:B10)", []string{"B2", "B10"}},
		{"=$C$5-$B$5", []string{"$C$5", "$B$5"}},
		{"=AA10*2", []string{"AA10"}},
		{"=B2+B2", []string{"B2", "B2"}},
		{"=1+2", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, References(tt.formula), "formula %q", tt.formula)
	}
}

func TestCoordinates(t *testing.T) {
	row, col, err := Coordinates("B2")
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)

	row, col, err = Coordinates("$AA$10")
	require.NoError(t, err)
	assert.Equal(t, 10, row)
	assert.Equal(t, 27, col)

	_, _, err = Coordinates("!!")
	assert.Error(t, err)
}
