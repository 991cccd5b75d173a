package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/klytics/sheetkit/internal/workbook"
)

func rowsSnapshot() *workbook.Snapshot {
	s := &workbook.Snapshot{
		Name: "Budget",
		Values: [][]string{
			{"Qty", "Price", "Total"},
			{"10", "2.5", "25"},
			{"", "", ""},
			{"2", "", "90"},
			{"7", "1", "7"},
		},
		HiddenRows: map[int]bool{5: true},
	}
	s.Finalize()
	return s
}

func TestDataRows(t *testing.T) {
	rows := DataRows(rowsSnapshot(), 1, 5, 1, []string{"Qty", "Price", "Total"})

	// Header row, the all-empty row, and the hidden row are all dropped.
	assert.Equal(t, []map[string]any{
		{"Qty": "10", "Price": "2.5", "Total": "25"},
		{"Qty": "2", "Price": nil, "Total": "90"},
	}, rows)
}

func TestDataRowsColumnOffset(t *testing.T) {
	s := &workbook.Snapshot{
		Values: [][]string{
			{"", "Region", "Actual"},
			{"", "West", "120"},
		},
	}
	s.Finalize()

	rows := DataRows(s, 1, 2, 2, []string{"Region", "Actual"})
	assert.Equal(t, []map[string]any{{"Region": "West", "Actual": "120"}}, rows)
}

func TestDataRowsHeaderOnly(t *testing.T) {
	s := &workbook.Snapshot{Values: [][]string{{"A", "B"}}}
	s.Finalize()

	assert.Nil(t, DataRows(s, 1, 1, 1, []string{"A", "B"}))
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Database: "excel_analysis", User: "postgres", Password: "secret"}
	assert.Equal(t,
		"host=localhost port=5432 dbname=excel_analysis user=postgres password=secret sslmode=disable",
		cfg.DSN())

	cfg = Config{Host: "db.internal", Port: 6432, Database: "sheets", User: "svc", SSLMode: "require"}
	assert.Equal(t,
		"host=db.internal port=6432 dbname=sheets user=svc password= sslmode=require",
		cfg.DSN())
}
