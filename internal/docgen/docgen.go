// Package docgen turns extracted formula records into plain-text
// documentation using an AI provider.
package docgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/klytics/sheetkit/internal/ai"
	"github.com/klytics/sheetkit/internal/formula"
)

// UniqueFormula summarizes all occurrences of one formula pattern.
type UniqueFormula struct {
	Pattern         string          `json:"pattern"`
	FormulaExample  string          `json:"formula_example"`
	ReadableFormula string          `json:"readable_formula"`
	Cells           []string        `json:"cells"`
	OccurrenceCount int             `json:"occurrence_count"`
	Dependencies    []string        `json:"dependencies"`
	Context         formula.Context `json:"context"`
}

// GroupByPattern groups records by their annotated formula, falling back to
// the raw formula when no annotation was produced. Group order follows first
// appearance in the input.
func GroupByPattern(records []formula.Record) []UniqueFormula {
	index := make(map[string]int)
	var groups []UniqueFormula

	for _, rec := range records {
		key := rec.Formula
		if rec.ReadableFormula != "" && rec.ReadableFormula != rec.Formula {
			key = rec.ReadableFormula
		}

		if i, ok := index[key]; ok {
			groups[i].Cells = append(groups[i].Cells, rec.Cell)
			groups[i].OccurrenceCount++
			continue
		}

		index[key] = len(groups)
		groups = append(groups, UniqueFormula{
			Pattern:         key,
			FormulaExample:  rec.Formula,
			ReadableFormula: rec.ReadableFormula,
			Cells:           []string{rec.Cell},
			OccurrenceCount: 1,
			Dependencies:    rec.Dependencies,
			Context:         rec.Context,
		})
	}

	return groups
}

// GroupBySheet buckets records by sheet name, preserving first-seen sheet
// order. Records without a sheet land under "Unknown".
func GroupBySheet(records []formula.Record) ([]string, map[string][]formula.Record) {
	var order []string
	sheets := make(map[string][]formula.Record)

	for _, rec := range records {
		name := rec.Context.Sheet
		if name == "" {
			name = "Unknown"
		}
		if _, ok := sheets[name]; !ok {
			order = append(order, name)
		}
		sheets[name] = append(sheets[name], rec)
	}

	return order, sheets
}

const divider = "================================================================================"

const systemPrompt = "You are an Excel formula documentation expert. You produce clear, plain-text documentation without any markdown syntax."

// SheetPrompt builds the documentation prompt for a single sheet.
func SheetPrompt(sheetName string, unique []UniqueFormula) (string, error) {
	data, err := json.MarshalIndent(unique, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding formula summary: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an Excel formula documentation expert. Analyze the following UNIQUE Excel formulas from the sheet %q.\n\n", sheetName)
	b.WriteString(`CRITICAL INSTRUCTIONS:
1. Use the 'readable_formula' field to understand what the formula does in plain English
2. When describing dependencies, use meaningful column names from 'readable_formula' (like "Actual", "Budget") NOT cell references (like C5, B5)
3. For mathematical notation, use the readable column names: "Actual - Budget = Difference" NOT "C5 - B5 = D5"
4. Generate output as PLAIN TEXT with clear sections and headings using text formatting (not markdown)
5. Use simple text formatting: CAPITALIZED HEADINGS, numbered lists, and clear spacing
6. Do NOT use any markdown syntax (no #, **, -, etc.)
7. Group formulas by their PATTERN (e.g., all subtraction formulas together, all division formulas together)

UNIQUE FORMULAS DATA:
`)
	b.Write(data)
	b.WriteString("\n\nCreate comprehensive documentation with EXACTLY these 4 parts:\n\n")
	b.WriteString(divider + "\nPART 1: FULL OVERVIEW\n" + divider + `

1.1 Sheet Purpose: what the sheet is for and what problem it solves
1.2 Sheet Structure: how the data is organized, main sections and tables
1.3 Key Calculations: the 3-5 most important formulas and their purpose
1.4 Data Flow: input sources -> processing -> outputs, which cells feed which calculations

` + divider + "\nPART 2: FORMULA DOCUMENTATION (GROUPED BY PATTERN)\n" + divider + `

Group formulas by mathematical pattern (subtraction, sum, division,
multiplication, table references, aggregate functions, text, complex/nested).
For each pattern give: the readable formula example, occurrence count, the
cells it applies to, its purpose, its dependencies in readable names, and the
business meaning.

` + divider + "\nPART 3: DEPENDENCY ANALYSIS\n" + divider + `

3.1 Formula Dependencies: which formulas depend on other formulas
3.2 Table Dependencies: which formulas reference structured tables
3.3 Cross-Reference Map: source data -> intermediate calculations -> results
3.4 Circular References & Issues: anything suspicious or broken

` + divider + "\nPART 4: INSIGHTS & ANALYSIS\n" + divider + `

4.1 Dominant calculation patterns and their frequency
4.2 Best practices observed
4.3 Potential issues (hardcoded values, overly complex formulas)
4.4 Top 5 key findings
4.5 Recommendations

` + divider + `

Format as clear, readable plain text with these exact 4 parts. Use section dividers as shown.
`)

	return b.String(), nil
}

// Options tunes documentation generation.
type Options struct {
	Source string // label for the originating file in the header
	Model  string
}

// Generate produces the full documentation text for a set of formula records,
// calling the provider once per sheet. Provider failures for an individual
// sheet are reported inline rather than aborting the rest of the run.
func Generate(ctx context.Context, provider ai.Provider, records []formula.Record, opts Options) (string, error) {
	order, sheets := GroupBySheet(records)

	var doc strings.Builder
	doc.WriteString(divider + "\n")
	doc.WriteString("EXCEL FORMULA DOCUMENTATION\n")
	doc.WriteString(divider + "\n\n")
	if opts.Source != "" {
		fmt.Fprintf(&doc, "Generated from: %s\n", opts.Source)
	}
	fmt.Fprintf(&doc, "Total Sheets: %d\n", len(order))
	fmt.Fprintf(&doc, "Total Formulas: %d\n\n", len(records))
	doc.WriteString(divider + "\n\n")

	doc.WriteString("TABLE OF CONTENTS\n")
	doc.WriteString(strings.Repeat("-", 80) + "\n\n")
	for i, name := range order {
		fmt.Fprintf(&doc, "%d. %s\n", i+1, name)
	}
	doc.WriteString("\n" + divider + "\n\n")

	for _, name := range order {
		text, err := generateSheet(ctx, provider, name, sheets[name], opts)
		if err != nil {
			text = fmt.Sprintf("Error generating documentation for %s: %v", name, err)
		}

		doc.WriteString("\n" + divider + "\n")
		fmt.Fprintf(&doc, "SHEET: %s\n", name)
		doc.WriteString(divider + "\n\n")
		doc.WriteString(text)
		doc.WriteString("\n\n" + divider + "\n\n")
	}

	return doc.String(), nil
}

func generateSheet(ctx context.Context, provider ai.Provider, name string, records []formula.Record, opts Options) (string, error) {
	unique := GroupByPattern(records)

	prompt, err := SheetPrompt(name, unique)
	if err != nil {
		return "", err
	}

	// Oversized prompts get chunked; each chunk is documented separately
	// and the sections concatenated.
	chunks := ai.ChunkText(prompt, ai.ChunkOptions{})
	var parts []string
	for _, chunk := range chunks {
		result, err := provider.Infer(ctx, systemPrompt, []ai.Message{{Role: "user", Content: chunk}}, ai.InferOptions{Model: opts.Model})
		if err != nil {
			return "", err
		}
		parts = append(parts, result.Content)
	}

	return strings.Join(parts, "\n\n"), nil
}
