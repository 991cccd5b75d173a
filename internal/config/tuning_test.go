package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadTuning(t *testing.T) {
	path := writeTuning(t, `
min_rows: 3
min_cols: 4
header_text_ratio: 0.6
`)

	tuning, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tuning.MinRows)
	assert.Equal(t, 4, tuning.MinCols)
	assert.InDelta(t, 0.6, tuning.HeaderTextRatio, 1e-9)
	assert.Zero(t, tuning.HeaderNumericRatio, "omitted keys stay zero")
}

func TestLoadTuningMissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading tuning file")
}

func TestLoadTuningValidation(t *testing.T) {
	tests := []struct {
		name, body, wantErr string
	}{
		{"negative size", "min_rows: -1", "must not be negative"},
		{"ratio above one", "header_text_ratio: 1.5", "header_text_ratio"},
		{"negative ratio", "header_numeric_ratio: -0.2", "header_numeric_ratio"},
		{"bad yaml", "min_rows: [", "parsing tuning file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTuning(writeTuning(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTuningApply(t *testing.T) {
	cfg := &Config{}
	cfg.Detect.MinRows = 2
	cfg.Detect.MinCols = 2
	cfg.Detect.HeaderTextRatio = 0.5
	cfg.Detect.HeaderNumericRatio = 1.0 / 3.0

	tuning := &Tuning{MinRows: 5, HeaderTextRatio: 0.8}
	tuning.Apply(cfg)

	assert.Equal(t, 5, cfg.Detect.MinRows)
	assert.Equal(t, 2, cfg.Detect.MinCols, "zero overrides leave the config alone")
	assert.InDelta(t, 0.8, cfg.Detect.HeaderTextRatio, 1e-9)
	assert.InDelta(t, 1.0/3.0, cfg.Detect.HeaderNumericRatio, 1e-9)
}

func TestTuningApplyNil(t *testing.T) {
	cfg := &Config{}
	cfg.Detect.MinRows = 2

	var tuning *Tuning
	tuning.Apply(cfg)
	assert.Equal(t, 2, cfg.Detect.MinRows)
}
