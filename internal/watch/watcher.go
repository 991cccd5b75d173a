// Package watch monitors directories for spreadsheet changes and re-runs
// analysis on each new or modified workbook.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config holds the watcher configuration.
type Config struct {
	Directories []string `json:"directories"`
	Extensions  []string `json:"extensions"` // defaults to .xlsx/.xlsm
	Recursive   bool     `json:"recursive"`
	Debounce    int      `json:"debounceMs"` // milliseconds to wait before processing
}

// Event records one handled file event.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"` // "create", "modify"
	Status    string    `json:"status"`    // "processed", "error", "skipped"
	Error     string    `json:"error,omitempty"`
}

// Handler is invoked for each workbook that settles after the debounce
// window.
type Handler func(path string) error

// Status describes a running watcher.
type Status struct {
	Running     bool     `json:"running"`
	Directories []string `json:"directories"`
	Extensions  []string `json:"extensions"`
	EventCount  int      `json:"eventCount"`
}

// defaultExtensions are the workbook formats the analyzer can open.
var defaultExtensions = []string{".xlsx", ".xlsm"}

// Watcher monitors directories for workbook changes.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Events  []Event
	Handler Handler

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
	exts     map[string]bool
}

// New creates a Watcher with the given configuration.
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if config.Debounce <= 0 {
		config.Debounce = 500
	}
	if len(config.Extensions) == 0 {
		config.Extensions = defaultExtensions
	}

	exts := make(map[string]bool, len(config.Extensions))
	for _, e := range config.Extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[strings.ToLower(e)] = true
	}

	return &Watcher{
		Config:   config,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
		exts:     exts,
	}, nil
}

// Start begins watching the configured directories. It blocks until the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, dir := range w.Config.Directories {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", dir, err)
		}

		if w.Config.Recursive {
			if err := w.addRecursive(absDir); err != nil {
				return err
			}
		} else {
			if err := w.watcher.Add(absDir); err != nil {
				return fmt.Errorf("could not watch %s: %w", absDir, err)
			}
		}
	}

	w.Logger.Printf("Watching %d directory(ies) for %s files",
		len(w.Config.Directories), strings.Join(w.Config.Extensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Only process create and write events
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path := event.Name
	if !w.matches(path) {
		return
	}

	op := "modify"
	if event.Has(fsnotify.Create) {
		op = "create"
	}

	// Debounce: Excel saves fire several events in quick succession
	w.mu.Lock()
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(time.Duration(w.Config.Debounce)*time.Millisecond, func() {
		w.processFile(path, op)
	})
	w.mu.Unlock()
}

func (w *Watcher) matches(path string) bool {
	if !w.exts[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	// Office lock/temp files
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}
	return true
}

func (w *Watcher) processFile(path string, operation string) {
	evt := Event{
		Time:      time.Now(),
		Path:      path,
		Operation: operation,
		Status:    "processed",
	}

	if w.Handler != nil {
		if err := w.Handler(path); err != nil {
			evt.Status = "error"
			evt.Error = err.Error()
			w.Logger.Printf("Error processing %s: %v", path, err)
		} else {
			w.Logger.Printf("Processed %s", path)
		}
	} else {
		evt.Status = "skipped"
		w.Logger.Printf("Matched %s [no handler]", path)
	}

	w.mu.Lock()
	w.Events = append(w.Events, evt)
	w.mu.Unlock()
}

// GetStatus returns the current watcher status.
func (w *Watcher) GetStatus() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		Running:     true,
		Directories: w.Config.Directories,
		Extensions:  w.Config.Extensions,
		EventCount:  len(w.Events),
	}
}

// GetEvents returns all recorded events.
func (w *Watcher) GetEvents() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.Events))
	copy(events, w.Events)
	return events
}

// Daemon helpers: a persistent watcher process tracked by a PID file.

const pidFile = ".sheetkit-watch.pid"

// WritePIDFile writes the current process ID to the PID file in the given directory.
func WritePIDFile(dir string) error {
	path := filepath.Join(dir, pidFile)
	return os.WriteFile(path, []byte(fmt.Sprintf("%d", os.Getpid())), 0644)
}

// ReadPIDFile reads the PID from the PID file.
func ReadPIDFile(dir string) (int, error) {
	path := filepath.Join(dir, pidFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var pid int
	if _, err := fmt.Sscanf(string(data), "%d", &pid); err != nil {
		return 0, fmt.Errorf("invalid PID file: %w", err)
	}
	return pid, nil
}

// RemovePIDFile removes the PID file.
func RemovePIDFile(dir string) error {
	return os.Remove(filepath.Join(dir, pidFile))
}

// SaveConfig writes the watcher config to a JSON file.
func SaveConfig(dir string, config Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "watch-config.json"), data, 0644)
}

// LoadConfig reads the watcher config from a JSON file.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, "watch-config.json"))
	if err != nil {
		return nil, err
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid watch config: %w", err)
	}
	return &config, nil
}
