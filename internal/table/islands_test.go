package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindIslandsSingleBlock(t *testing.T) {
	g := gridFromRows([]string{
		"xx.",
		"xx.",
		"...",
	})

	islands := FindIslands(g, 2, 2)
	assert.Equal(t, []Range{{R1: 1, C1: 1, R2: 2, C2: 2}}, islands)
}

func TestFindIslandsMinimumSize(t *testing.T) {
	g := gridFromRows([]string{
		"x..xx",
		"...xx",
		".....",
		"xxx..",
	})

	// The lone cell at A1 and the one-row strip at A4 are below the 2x2
	// minimum; only the 2x2 block survives.
	islands := FindIslands(g, 2, 2)
	assert.Equal(t, []Range{{R1: 1, C1: 4, R2: 2, C2: 5}}, islands)
}

func TestFindIslandsDiscoveryOrder(t *testing.T) {
	g := gridFromRows([]string{
		"....xx",
		"xx..xx",
		"xx....",
	})

	// Row-major scan: the top-right block is reached first.
	islands := FindIslands(g, 2, 2)
	assert.Equal(t, []Range{
		{R1: 1, C1: 5, R2: 2, C2: 6},
		{R1: 2, C1: 1, R2: 3, C2: 2},
	}, islands)
}

func TestFindIslandsDiagonalNotConnected(t *testing.T) {
	g := gridFromRows([]string{
		"xx..",
		"xx..",
		"..xx",
		"..xx",
	})

	islands := FindIslands(g, 2, 2)
	assert.Len(t, islands, 2, "diagonal adjacency must not join components")
}

func TestFindIslandsLShape(t *testing.T) {
	g := gridFromRows([]string{
		"xx..",
		"xx..",
		"xxxx",
		"xxxx",
	})

	islands := FindIslands(g, 2, 2)
	assert.Equal(t, []Range{{R1: 1, C1: 1, R2: 4, C2: 4}}, islands,
		"bounding box covers the whole connected component")
}

func TestFindIslandsDeterministic(t *testing.T) {
	g := gridFromRows([]string{
		"xx.xx",
		"xx.xx",
		".....",
		"xx...",
		"xx...",
	})

	first := FindIslands(g, 2, 2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FindIslands(g, 2, 2))
	}
}

func TestFindIslandsEmptyGrid(t *testing.T) {
	assert.Nil(t, FindIslands(NewGrid(0, 0), 2, 2))
	assert.Nil(t, FindIslands(NewGrid(5, 5), 2, 2))
}

func TestFindIslandsDefaultMinimums(t *testing.T) {
	g := gridFromRows([]string{
		"xx",
		"xx",
	})
	// Zero minimums fall back to the 2x2 defaults.
	islands := FindIslands(g, 0, 0)
	assert.Len(t, islands, 1)
}
