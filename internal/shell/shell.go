// Package shell provides an interactive REPL for exploring analysis results.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/klytics/sheetkit/internal/analyze"
	"github.com/klytics/sheetkit/internal/formula"
)

// Session manages an interactive inspection session over an analyzed
// workbook.
type Session struct {
	Result       *analyze.Result
	Source       string // workbook path, shown in the banner
	DefaultSheet string

	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time
}

// NewSession creates a session over an analysis result. The default sheet is
// the first sheet of the workbook.
func NewSession(result *analyze.Result, source string) (*Session, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to explore")
	}

	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".sheetkit", "shell_history")
	os.MkdirAll(filepath.Dir(histFile), 0755)

	s := &Session{
		Result:      result,
		Source:      source,
		HistoryFile: histFile,
		StartTime:   time.Now(),
	}
	if len(result.Sheets) > 0 {
		s.DefaultSheet = result.Sheets[0].Name
	}
	return s, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sheetkit> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    s.buildCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Printf("sheetkit — interactive explorer (%s)\n", s.Source)
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.CommandHistory = append(s.CommandHistory, line)

		if line == "exit" || line == "quit" {
			elapsed := time.Since(s.StartTime)
			fmt.Printf("\nSession ended. %d commands run in %s.\n",
				len(s.CommandHistory)-1, formatDuration(elapsed))
			return nil
		}

		output, err := s.Eval(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}
		if output != "" {
			fmt.Print(output)
			if !strings.HasSuffix(output, "\n") {
				fmt.Println()
			}
		}
	}

	return nil
}

// Eval runs a single command line and returns its output.
func (s *Session) Eval(line string) (string, error) {
	args := strings.Fields(strings.TrimSpace(line))
	if len(args) == 0 {
		return "", nil
	}

	switch args[0] {
	case "help":
		return helpText, nil
	case "history":
		var b strings.Builder
		for i, cmd := range s.CommandHistory {
			fmt.Fprintf(&b, "  %d  %s\n", i+1, cmd)
		}
		return b.String(), nil
	case "sheets":
		return s.listSheets(), nil
	case "tables":
		return s.listTables(s.sheetArg(args[1:]))
	case "formulas":
		return s.listFormulas(s.sheetArg(args[1:]))
	case "owner":
		if len(args) < 2 {
			return "", fmt.Errorf("usage: owner <cell> [sheet]")
		}
		return s.owner(args[1], s.sheetArg(args[2:]))
	case "set":
		if len(args) == 3 && args[1] == "sheet" {
			if _, err := s.sheet(args[2]); err != nil {
				return "", err
			}
			s.DefaultSheet = args[2]
			return fmt.Sprintf("Default sheet: %s", args[2]), nil
		}
		return "", fmt.Errorf("usage: set sheet <name>")
	default:
		return "", fmt.Errorf("unknown command %q — type 'help'", args[0])
	}
}

func (s *Session) sheetArg(rest []string) string {
	if len(rest) > 0 {
		return strings.Join(rest, " ")
	}
	return s.DefaultSheet
}

func (s *Session) sheet(name string) (*analyze.SheetResult, error) {
	if sr := s.Result.Sheet(name); sr != nil {
		return sr, nil
	}
	return nil, fmt.Errorf("no sheet named %q", name)
}

func (s *Session) listSheets() string {
	var b strings.Builder
	for _, sr := range s.Result.Sheets {
		marker := " "
		if sr.Name == s.DefaultSheet {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s  (%d explicit, %d implicit tables, %d formulas)\n",
			marker, sr.Name, len(sr.Registry.Explicit), len(sr.Registry.Implicit), len(sr.Records))
	}
	return b.String()
}

func (s *Session) listTables(sheet string) (string, error) {
	sr, err := s.sheet(sheet)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, reg := range sr.Registry.All() {
		fmt.Fprintf(&b, "%-10s %-12s %-12s", reg.TableName, reg.Type, reg.Bounds.String())
		if len(reg.Headers) > 0 {
			fmt.Fprintf(&b, "  [%s]", strings.Join(reg.Headers, ", "))
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return fmt.Sprintf("No tables detected on %s.\n", sheet), nil
	}
	return b.String(), nil
}

func (s *Session) listFormulas(sheet string) (string, error) {
	sr, err := s.sheet(sheet)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, rec := range sr.Records {
		fmt.Fprintf(&b, "%-8s %s\n", rec.Cell, rec.ReadableFormula)
		if len(rec.Dependencies) > 0 {
			fmt.Fprintf(&b, "         depends on: %s\n", strings.Join(rec.Dependencies, ", "))
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("No formulas on %s.\n", sheet), nil
	}
	return b.String(), nil
}

func (s *Session) owner(cell, sheet string) (string, error) {
	sr, err := s.sheet(sheet)
	if err != nil {
		return "", err
	}

	row, col, err := formula.Coordinates(cell)
	if err != nil {
		return "", fmt.Errorf("invalid cell reference %q", cell)
	}

	reg, header, ok := sr.Registry.FindOwner(row, col)
	if !ok {
		return fmt.Sprintf("%s is not inside any detected table on %s.", strings.ToUpper(cell), sheet), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s belongs to %s (%s, %s)", strings.ToUpper(cell), reg.TableName, reg.Type, reg.Bounds.String())
	if header != "" {
		fmt.Fprintf(&b, ", column %q", header)
	}
	return b.String(), nil
}

const helpText = `Available commands:

  sheets                  list sheets with table and formula counts
  tables [sheet]          list detected tables on a sheet
  formulas [sheet]        list annotated formulas on a sheet
  owner <cell> [sheet]    show which table owns a cell
  set sheet <name>        change the default sheet
  history                 show command history
  exit                    exit the shell
`

func (s *Session) buildCompleter() readline.AutoCompleter {
	var sheetItems []readline.PrefixCompleterInterface
	var names []string
	for _, sr := range s.Result.Sheets {
		names = append(names, sr.Name)
	}
	sort.Strings(names)
	for _, name := range names {
		sheetItems = append(sheetItems, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("sheets"),
		readline.PcItem("tables", sheetItems...),
		readline.PcItem("formulas", sheetItems...),
		readline.PcItem("owner"),
		readline.PcItem("set", readline.PcItem("sheet", sheetItems...)),
		readline.PcItem("history"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
