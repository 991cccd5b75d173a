// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKeys  struct {
		Anthropic string `mapstructure:"anthropic"`
		OpenAI    string `mapstructure:"openai"`
	} `mapstructure:"api_keys"`
	Ollama struct {
		Host string `mapstructure:"host"`
	} `mapstructure:"ollama"`
	Postgres struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Database string `mapstructure:"database"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"postgres"`
	Detect struct {
		MinRows            int     `mapstructure:"min_rows"`
		MinCols            int     `mapstructure:"min_cols"`
		HeaderTextRatio    float64 `mapstructure:"header_text_ratio"`
		HeaderNumericRatio float64 `mapstructure:"header_numeric_ratio"`
	} `mapstructure:"detect"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
}

// Load reads the configuration from ~/.sheetkit/config.yaml and environment
// variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(Dir())

	// Defaults
	viper.SetDefault("provider", "anthropic")
	viper.SetDefault("model", "claude-sonnet-4-20250514")
	viper.SetDefault("output.color", true)
	viper.SetDefault("output.format", "text")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.database", "excel_analysis")
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("detect.min_rows", 2)
	viper.SetDefault("detect.min_cols", 2)
	viper.SetDefault("detect.header_text_ratio", 0.5)
	viper.SetDefault("detect.header_numeric_ratio", 1.0/3.0)

	// Environment variable overrides
	viper.SetEnvPrefix("SHEETKIT")
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dir returns the sheetkit configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sheetkit"
	}
	return filepath.Join(home, ".sheetkit")
}
