// Package stats provides the "sheetkit stats" command for local usage
// statistics.
package stats

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/internal/output"
	"github.com/klytics/sheetkit/internal/telemetry"
)

// NewCommand creates the "stats" command.
func NewCommand() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show local usage statistics",
		Long:  "Aggregates the local telemetry log: command counts, durations, and errors. All data stays on this machine.",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			store := telemetry.DefaultStore()

			if clear {
				if err := store.Clear(); err != nil {
					return fmt.Errorf("could not clear telemetry data: %w", err)
				}
				if !jsonFlag {
					output.Successf("Telemetry data cleared")
				}
				return nil
			}

			stats, err := store.Summary()
			if err != nil {
				return fmt.Errorf("could not read telemetry data: %w", err)
			}

			if jsonFlag {
				return output.PrintJSON("stats", stats)
			}

			output.Heading("Usage statistics")
			fmt.Printf("  Commands run:  %d\n", stats.TotalCommands)
			fmt.Printf("  Errors:        %d\n", stats.ErrorCount)
			fmt.Printf("  Avg duration:  %.0f ms\n", stats.AvgDuration)

			if len(stats.TopCommands) > 0 {
				fmt.Println("\n  Top commands:")
				type entry struct {
					name  string
					count int
				}
				entries := make([]entry, 0, len(stats.TopCommands))
				for name, count := range stats.TopCommands {
					entries = append(entries, entry{name, count})
				}
				sort.Slice(entries, func(i, j int) bool {
					if entries[i].count != entries[j].count {
						return entries[i].count > entries[j].count
					}
					return entries[i].name < entries[j].name
				})
				for _, e := range entries {
					fmt.Printf("    %-12s %d\n", e.name, e.count)
				}
			}

			output.Dimf("\n  Store: %s (%d bytes)", store.Path, store.Size())
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Delete the local telemetry data")

	return cmd
}
