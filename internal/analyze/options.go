package analyze

import (
	"github.com/klytics/sheetkit/internal/config"
	"github.com/klytics/sheetkit/internal/table"
)

// OptionsFrom builds analysis options from the application config. Zero or
// missing values fall back to the detection defaults.
func OptionsFrom(cfg *config.Config) Options {
	opts := Options{Detect: table.DefaultConfig()}
	if cfg == nil {
		return opts
	}
	if cfg.Detect.MinRows > 0 {
		opts.Detect.MinRows = cfg.Detect.MinRows
	}
	if cfg.Detect.MinCols > 0 {
		opts.Detect.MinCols = cfg.Detect.MinCols
	}
	if cfg.Detect.HeaderTextRatio > 0 {
		opts.Detect.Header.TextRatio = cfg.Detect.HeaderTextRatio
	}
	if cfg.Detect.HeaderNumericRatio > 0 {
		opts.Detect.Header.NumericRatio = cfg.Detect.HeaderNumericRatio
	}
	return opts
}
