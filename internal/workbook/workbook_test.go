package workbook

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fixtureBytes builds a small workbook in memory: an explicit table over
// A1:C3, a formula in C2, a merged note in row 5, and a hidden row and column.
func fixtureBytes(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	rows := [][]any{
		{"Qty", "Price", "Total"},
		{10, 2.5, 25},
		{2, 45, 90},
	}
	for i, row := range rows {
		for j, v := range row {
			addr, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, addr, v))
		}
	}
	require.NoError(t, f.SetCellFormula(sheet, "C2", "A2*B2"))
	require.NoError(t, f.AddTable(sheet, &excelize.Table{Range: "A1:C3", Name: "Sales"}))

	require.NoError(t, f.SetCellValue(sheet, "A5", "quarterly note"))
	require.NoError(t, f.MergeCell(sheet, "A5", "B5"))

	require.NoError(t, f.SetRowVisible(sheet, 3, false))
	require.NoError(t, f.SetColVisible(sheet, "B", false))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func TestLoadBytes(t *testing.T) {
	wb, err := LoadBytes(fixtureBytes(t))
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)

	s := wb.Sheets[0]
	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 3, s.Cols)

	assert.Equal(t, "Qty", s.Value(1, 1))
	assert.Equal(t, "45", s.Value(3, 2))
	assert.Equal(t, "", s.Value(4, 1))

	assert.True(t, s.HiddenRows[3])
	assert.True(t, s.HiddenCols[2])
	assert.False(t, s.HiddenRows[1])
}

func TestLoadBytesFormulas(t *testing.T) {
	wb, err := LoadBytes(fixtureBytes(t))
	require.NoError(t, err)

	s := wb.Sheets[0]
	require.Len(t, s.Formulas, 1)
	fc := s.Formulas[0]
	assert.Equal(t, "C2", fc.Addr)
	assert.Equal(t, 2, fc.Row)
	assert.Equal(t, 3, fc.Col)
	assert.Equal(t, "=A2*B2", fc.Expr, "formula text always carries the = prefix")
}

func TestLoadBytesDeclaredTables(t *testing.T) {
	wb, err := LoadBytes(fixtureBytes(t))
	require.NoError(t, err)

	s := wb.Sheets[0]
	require.Len(t, s.Tables, 1)
	dt := s.Tables[0]
	assert.Equal(t, "Sales", dt.Name)
	assert.Equal(t, "A1:C3", dt.Ref)
	assert.Equal(t, 1, dt.R1)
	assert.Equal(t, 1, dt.C1)
	assert.Equal(t, 3, dt.R2)
	assert.Equal(t, 3, dt.C2)
}

func TestValueMergeResolution(t *testing.T) {
	wb, err := LoadBytes(fixtureBytes(t))
	require.NoError(t, err)

	s := wb.Sheets[0]
	assert.Equal(t, "quarterly note", s.Value(5, 1))
	assert.Equal(t, "quarterly note", s.Value(5, 2), "covered cell resolves to its merge anchor")
	assert.Equal(t, "", s.RawValue(5, 2), "raw access ignores merges")
}

func TestLoadRejectsLegacyFormat(t *testing.T) {
	_, err := Load("report.xls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".xls")
	assert.Contains(t, err.Error(), "convert")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref            string
		r1, c1, r2, c2 int
		wantErr        bool
	}{
		{ref: "A1:C5", r1: 1, c1: 1, r2: 5, c2: 3},
		{ref: "$B$2:$D$4", r1: 2, c1: 2, r2: 4, c2: 4},
		{ref: "AA10", r1: 10, c1: 27, r2: 10, c2: 27},
		{ref: "garbage", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			r1, c1, r2, c2, err := ParseRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, [4]int{tt.r1, tt.c1, tt.r2, tt.c2}, [4]int{r1, c1, r2, c2})
		})
	}
}

func TestFinalizePadsRagged(t *testing.T) {
	s := &Snapshot{Values: [][]string{
		{"a", "b", "c"},
		{"d"},
		{},
	}}
	s.Finalize()

	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 3, s.Cols)
	for _, row := range s.Values {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, "d", s.Value(2, 1))
	assert.Equal(t, "", s.Value(2, 3))
}

func TestMatrix(t *testing.T) {
	s := &Snapshot{
		Values: [][]string{
			{"h1", "h2"},
			{"1", "2"},
			{"3", "4"},
		},
		Merges: []MergeRange{{R1: 2, C1: 1, R2: 2, C2: 2}},
	}
	s.Finalize()

	got := s.Matrix(2, 1, 3, 2)
	want := [][]string{
		{"1", "1"}, // merge anchor fills the covered cell
		{"3", "4"},
	}
	assert.Equal(t, want, got)
}
