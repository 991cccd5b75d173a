package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning overrides the table detection parameters from a standalone YAML
// file, typically passed on the command line with --tuning. Zero values mean
// "keep the default".
type Tuning struct {
	MinRows            int     `yaml:"min_rows" json:"min_rows"`
	MinCols            int     `yaml:"min_cols" json:"min_cols"`
	HeaderTextRatio    float64 `yaml:"header_text_ratio" json:"header_text_ratio"`
	HeaderNumericRatio float64 `yaml:"header_numeric_ratio" json:"header_numeric_ratio"`
}

// LoadTuning reads a tuning file. A missing file is an error here, unlike the
// main config, because the path was given explicitly.
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning file: %w", err)
	}

	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}

	if t.MinRows < 0 || t.MinCols < 0 {
		return nil, fmt.Errorf("tuning file %s: minimum sizes must not be negative", path)
	}
	if t.HeaderTextRatio < 0 || t.HeaderTextRatio > 1 {
		return nil, fmt.Errorf("tuning file %s: header_text_ratio must be between 0 and 1", path)
	}
	if t.HeaderNumericRatio < 0 || t.HeaderNumericRatio > 1 {
		return nil, fmt.Errorf("tuning file %s: header_numeric_ratio must be between 0 and 1", path)
	}

	return &t, nil
}

// Apply merges the tuning overrides into a config's detect section.
func (t *Tuning) Apply(cfg *Config) {
	if t == nil {
		return
	}
	if t.MinRows > 0 {
		cfg.Detect.MinRows = t.MinRows
	}
	if t.MinCols > 0 {
		cfg.Detect.MinCols = t.MinCols
	}
	if t.HeaderTextRatio > 0 {
		cfg.Detect.HeaderTextRatio = t.HeaderTextRatio
	}
	if t.HeaderNumericRatio > 0 {
		cfg.Detect.HeaderNumericRatio = t.HeaderNumericRatio
	}
}
