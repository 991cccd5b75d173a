package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klytics/sheetkit/internal/workbook"
)

func TestDetectSheetImplicitOnly(t *testing.T) {
	s := snapshotFromRows("Data", [][]string{
		{"Item", "Qty"},
		{"Paper", "10"},
		{"Toner", "2"},
	})

	reg := DetectSheet(s, DefaultConfig())

	assert.Empty(t, reg.Explicit)
	require.Len(t, reg.Implicit, 1)

	r := reg.Implicit[0]
	assert.Equal(t, "Table 1", r.TableName)
	assert.Equal(t, Range{R1: 1, C1: 1, R2: 3, C2: 2}, r.Bounds)
	assert.Equal(t, []string{"Item", "Qty"}, r.Headers)
	assert.Equal(t, 1, r.HeaderRow)
	assert.Equal(t, 2, r.RowCount)
}

func TestDetectSheetExplicitExcludedFromImplicit(t *testing.T) {
	s := snapshotFromRows("Budget", [][]string{
		{"Item", "Qty", "", "", ""},
		{"Paper", "10", "", "", ""},
		{"Toner", "2", "", "", ""},
		{"", "", "", "", ""},
		{"", "", "", "Region", "Actual"},
		{"", "", "", "North", "1200"},
		{"", "", "", "South", "800"},
	})
	s.Tables = []workbook.DeclaredTable{{
		Name: "Expenses", Ref: "A1:B3", R1: 1, C1: 1, R2: 3, C2: 2,
	}}

	reg := DetectSheet(s, DefaultConfig())

	require.Len(t, reg.Explicit, 1)
	assert.Equal(t, "Expenses", reg.Explicit[0].TableName)
	assert.Equal(t, []string{"Item", "Qty"}, reg.Explicit[0].Headers)

	// The declared range must not be re-detected; only the detached block is.
	require.Len(t, reg.Implicit, 1)
	assert.Equal(t, Range{R1: 5, C1: 4, R2: 7, C2: 5}, reg.Implicit[0].Bounds)
}

func TestDetectSheetNamingCounter(t *testing.T) {
	s := snapshotFromRows("Multi", [][]string{
		{"A", "B", "", "C", "D"},
		{"1", "2", "", "3", "4"},
		{"5", "6", "", "7", "8"},
	})
	// A named declared table still advances the shared counter, so the first
	// implicit block becomes "Table 2".
	s.Tables = []workbook.DeclaredTable{{
		Name: "Named", Ref: "A1:B3", R1: 1, C1: 1, R2: 3, C2: 2,
	}}

	reg := DetectSheet(s, DefaultConfig())

	require.Len(t, reg.Implicit, 1)
	assert.Equal(t, "Table 2", reg.Implicit[0].TableName)
}

func TestDetectSheetUnnamedExplicit(t *testing.T) {
	s := snapshotFromRows("S", [][]string{
		{"Col", "Val"},
		{"a", "1"},
	})
	s.Tables = []workbook.DeclaredTable{{
		Ref: "A1:B2", R1: 1, C1: 1, R2: 2, C2: 2,
	}}

	reg := DetectSheet(s, DefaultConfig())

	require.Len(t, reg.Explicit, 1)
	assert.Empty(t, reg.Explicit[0].Name)
	assert.Equal(t, "Table 1", reg.Explicit[0].TableName)
}

func TestExplicitHeadersDeclaredColumns(t *testing.T) {
	s := snapshotFromRows("S", [][]string{
		{"raw1", "raw2"},
		{"1", "2"},
	})
	tbl := workbook.DeclaredTable{
		R1: 1, C1: 1, R2: 2, C2: 2,
		Columns: []string{"Quantity", "Amount"},
	}

	assert.Equal(t, []string{"Quantity", "Amount"}, explicitHeaders(s, tbl),
		"declared column names win over the first row")
}

func TestExplicitHeadersFirstRowFallback(t *testing.T) {
	s := snapshotFromRows("S", [][]string{
		{"Item", "Qty", "Price"},
		{"a", "1", "2"},
	})
	tbl := workbook.DeclaredTable{R1: 1, C1: 1, R2: 2, C2: 3}

	assert.Equal(t, []string{"Item", "Qty", "Price"}, explicitHeaders(s, tbl))

	// Hidden columns drop out of the fallback row.
	s.HiddenCols[2] = true
	assert.Equal(t, []string{"Item", "Price"}, explicitHeaders(s, tbl))
}

func TestExplicitHeadersDegenerateDeclared(t *testing.T) {
	s := snapshotFromRows("S", [][]string{
		{"Item", "Qty"},
		{"a", "1"},
	})
	tbl := workbook.DeclaredTable{
		R1: 1, C1: 1, R2: 2, C2: 2,
		Columns: []string{"[#All]", "123"},
	}

	// Declared names that sanitize to nothing fall back to the first row.
	assert.Equal(t, []string{"Item", "Qty"}, explicitHeaders(s, tbl))
}

func TestDetectSheetEmpty(t *testing.T) {
	s := snapshotFromRows("Empty", nil)
	reg := DetectSheet(s, DefaultConfig())
	assert.Empty(t, reg.Explicit)
	assert.Empty(t, reg.Implicit)
}

func TestDetectSheetMinSizeConfig(t *testing.T) {
	s := snapshotFromRows("S", [][]string{
		{"a", "b", "c"},
	})

	// One row tall: below the default 2-row minimum.
	reg := DetectSheet(s, DefaultConfig())
	assert.Empty(t, reg.Implicit)

	// Permissive config picks it up.
	cfg := DefaultConfig()
	cfg.MinRows = 1
	reg = DetectSheet(s, cfg)
	assert.Len(t, reg.Implicit, 1)
}
