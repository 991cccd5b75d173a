// Package config provides CLI commands for configuration management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/klytics/sheetkit/internal/config"
	"github.com/klytics/sheetkit/internal/output"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sheetkit configuration",
		Long:  "View the effective configuration and create the default config file.",
	}

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newPathCommand())

	return cmd
}

const defaultConfigYAML = `# sheetkit configuration
provider: anthropic
model: claude-sonnet-4-20250514

# api_keys:
#   anthropic: ""
#   openai: ""

ollama:
  host: http://localhost:11434

postgres:
  host: localhost
  port: 5432
  database: excel_analysis
  user: postgres
  sslmode: disable

detect:
  min_rows: 2
  min_cols: 2
  header_text_ratio: 0.5
  header_numeric_ratio: 0.3333

output:
  format: text
  color: true
`

func newInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.Dir(), "config.yaml")

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := os.MkdirAll(config.Dir(), 0755); err != nil {
				return fmt.Errorf("could not create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(defaultConfigYAML), 0644); err != nil {
				return fmt.Errorf("could not write config file: %w", err)
			}

			output.Successf("Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// API keys never leave the config file
			cfg.APIKeys.Anthropic = redact(cfg.APIKeys.Anthropic)
			cfg.APIKeys.OpenAI = redact(cfg.APIKeys.OpenAI)
			cfg.Postgres.Password = redact(cfg.Postgres.Password)

			if jsonFlag {
				return output.PrintJSON("config show", cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(filepath.Join(config.Dir(), "config.yaml"))
		},
	}
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
