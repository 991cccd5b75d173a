// Package watch provides the "sheetkit watch" commands for directory
// monitoring and automatic re-analysis.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/internal/analyze"
	"github.com/klytics/sheetkit/internal/config"
	"github.com/klytics/sheetkit/internal/output"
	w "github.com/klytics/sheetkit/internal/watch"
	"github.com/klytics/sheetkit/internal/workbook"
)

// NewCommand creates the "watch" command with subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor directories and re-analyze changed workbooks",
		Long: `Watch directories for new or modified workbooks and re-run the analysis
pipeline on each change, writing fresh reports next to the workbook.

Example:
  sheetkit watch start ./finance --recursive
  sheetkit watch status
  sheetkit watch stop`,
	}

	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newStopCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

func newStartCmd() *cobra.Command {
	var (
		extensions []string
		recursive  bool
		debounce   int
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "start <directory> [directory...]",
		Short: "Start watching directories for workbook changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			wcfg := w.Config{
				Directories: args,
				Extensions:  extensions,
				Recursive:   recursive,
				Debounce:    debounce,
			}

			watcher, err := w.New(wcfg)
			if err != nil {
				return err
			}

			watcher.Handler = func(path string) error {
				return reanalyze(cfg, path, outDir)
			}

			configDir := config.Dir()
			if err := w.WritePIDFile(configDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not write PID file: %v\n", err)
			}
			defer w.RemovePIDFile(configDir)

			// Save config for the status command
			w.SaveConfig(configDir, watcher.Config)

			fmt.Printf("Watching %d directory(ies) for %s files\n",
				len(args), strings.Join(watcher.Config.Extensions, ", "))
			fmt.Println("Press Ctrl+C to stop")

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Println("\nStopping watcher...")
				cancel()
			}()

			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "File extensions to watch (default: .xlsx,.xlsm)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch directories recursively")
	cmd.Flags().IntVar(&debounce, "debounce", 500, "Debounce interval in milliseconds")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for report files (default: next to the workbook)")

	return cmd
}

// reanalyze runs the pipeline on a changed workbook and writes both reports.
func reanalyze(cfg *config.Config, path, outDir string) error {
	wb, err := workbook.Load(path)
	if err != nil {
		return err
	}

	res := analyze.Run(wb, analyze.OptionsFrom(cfg))

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(path)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if err := res.Tables.Write(filepath.Join(dir, stem+"_tables.json")); err != nil {
		return err
	}
	if err := res.Formulas.Write(filepath.Join(dir, stem+"_formulas.json")); err != nil {
		return err
	}

	output.Successf("Re-analyzed %s: %d sheets, %d formulas", path, len(res.Sheets), len(res.Formulas))
	return nil
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := config.Dir()
			pid, err := w.ReadPIDFile(configDir)
			if err != nil {
				return fmt.Errorf("no watcher running (PID file not found)")
			}

			process, err := os.FindProcess(pid)
			if err != nil {
				return fmt.Errorf("could not find process %d: %w", pid, err)
			}

			if err := process.Signal(syscall.SIGTERM); err != nil {
				w.RemovePIDFile(configDir)
				return fmt.Errorf("could not stop watcher (PID %d): %w", pid, err)
			}

			w.RemovePIDFile(configDir)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"stopped": true,
					"pid":     pid,
				})
			}

			fmt.Printf("Stopped watcher (PID %d)\n", pid)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current watcher status",
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := config.Dir()

			pid, err := w.ReadPIDFile(configDir)
			running := err == nil

			// Signal 0 checks liveness without touching the process
			if running {
				process, err := os.FindProcess(pid)
				if err != nil {
					running = false
				} else if err := process.Signal(syscall.Signal(0)); err != nil {
					running = false
					w.RemovePIDFile(configDir)
				}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")

			if !running {
				if jsonOut {
					return json.NewEncoder(os.Stdout).Encode(map[string]any{"running": false})
				}
				fmt.Println("Watcher is not running")
				return nil
			}

			wcfg, _ := w.LoadConfig(configDir)

			status := map[string]any{
				"running": true,
				"pid":     pid,
			}
			if wcfg != nil {
				status["directories"] = wcfg.Directories
				status["extensions"] = wcfg.Extensions
				status["recursive"] = wcfg.Recursive
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(status)
			}

			fmt.Printf("Watcher is running (PID %d)\n", pid)
			if wcfg != nil {
				fmt.Printf("  Directories: %s\n", strings.Join(wcfg.Directories, ", "))
				fmt.Printf("  Extensions:  %s\n", strings.Join(wcfg.Extensions, ", "))
				fmt.Printf("  Recursive:   %v\n", wcfg.Recursive)
			}
			return nil
		},
	}
}
