package docgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klytics/sheetkit/internal/ai"
	"github.com/klytics/sheetkit/internal/formula"
)

func rec(sheet, cell, expr, readable string) formula.Record {
	return formula.Record{
		Cell:            cell,
		Formula:         expr,
		ReadableFormula: readable,
		Dependencies:    []string{},
		Context:         formula.Context{Sheet: sheet, CellAddress: cell, Value: "1"},
	}
}

func TestGroupByPattern(t *testing.T) {
	records := []formula.Record{
		rec("Budget", "D2", "=B2-C2", "=[Actual]-[Target]"),
		rec("Budget", "D3", "=B3-C3", "=[Actual]-[Target]"),
		rec("Budget", "E2", "=SUM(B2:B9)", ""),
		rec("Budget", "D4", "=B4-C4", "=[Actual]-[Target]"),
	}

	groups := GroupByPattern(records)
	require.Len(t, groups, 2)

	assert.Equal(t, "=[Actual]-[Target]", groups[0].Pattern)
	assert.Equal(t, "=B2-C2", groups[0].FormulaExample, "example comes from the first occurrence")
	assert.Equal(t, []string{"D2", "D3", "D4"}, groups[0].Cells)
	assert.Equal(t, 3, groups[0].OccurrenceCount)

	// No annotation: the raw formula is the pattern key.
	assert.Equal(t, "=SUM(B2:B9)", groups[1].Pattern)
	assert.Equal(t, 1, groups[1].OccurrenceCount)
}

func TestGroupByPatternUnchangedAnnotation(t *testing.T) {
	// An annotation identical to the formula is no grouping signal.
	records := []formula.Record{
		rec("S", "A1", "=1+1", "=1+1"),
		rec("S", "A2", "=1+1", "=1+1"),
	}
	groups := GroupByPattern(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "=1+1", groups[0].Pattern)
	assert.Equal(t, 2, groups[0].OccurrenceCount)
}

func TestGroupBySheet(t *testing.T) {
	records := []formula.Record{
		rec("Summary", "A1", "=1", ""),
		rec("Detail", "B1", "=2", ""),
		rec("Summary", "A2", "=3", ""),
		{Cell: "C1", Formula: "=4"},
	}

	order, sheets := GroupBySheet(records)
	assert.Equal(t, []string{"Summary", "Detail", "Unknown"}, order)
	assert.Len(t, sheets["Summary"], 2)
	assert.Len(t, sheets["Detail"], 1)
	assert.Len(t, sheets["Unknown"], 1)
}

func TestSheetPrompt(t *testing.T) {
	unique := GroupByPattern([]formula.Record{
		rec("Budget", "D2", "=B2-C2", "=[Actual]-[Target]"),
	})

	prompt, err := SheetPrompt("Budget", unique)
	require.NoError(t, err)

	assert.Contains(t, prompt, `"Budget"`)
	assert.Contains(t, prompt, "=[Actual]-[Target]")
	assert.Contains(t, prompt, "PART 1: FULL OVERVIEW")
	assert.Contains(t, prompt, "PART 4: INSIGHTS & ANALYSIS")
}

// scriptedProvider answers every prompt with a fixed body, or fails for the
// sheets listed in failFor.
type scriptedProvider struct {
	body    string
	failFor string
	calls   int
}

func (p *scriptedProvider) Infer(_ context.Context, _ string, messages []ai.Message, _ ai.InferOptions) (*ai.InferResult, error) {
	p.calls++
	if p.failFor != "" && strings.Contains(messages[0].Content, p.failFor) {
		return nil, errors.New("backend unavailable")
	}
	return &ai.InferResult{Content: p.body}, nil
}

func (p *scriptedProvider) Stream(context.Context, string, []ai.Message, ai.InferOptions) (<-chan string, <-chan error, error) {
	return nil, nil, errors.New("not implemented")
}

func (p *scriptedProvider) Name() string { return "scripted" }

func TestGenerate(t *testing.T) {
	records := []formula.Record{
		rec("Summary", "A1", "=1+1", ""),
		rec("Detail", "B1", "=2+2", ""),
	}
	provider := &scriptedProvider{body: "SHEET DOCUMENTATION BODY"}

	doc, err := Generate(context.Background(), provider, records, Options{Source: "model.xlsx"})
	require.NoError(t, err)

	assert.Contains(t, doc, "EXCEL FORMULA DOCUMENTATION")
	assert.Contains(t, doc, "Generated from: model.xlsx")
	assert.Contains(t, doc, "Total Sheets: 2")
	assert.Contains(t, doc, "1. Summary")
	assert.Contains(t, doc, "2. Detail")
	assert.Contains(t, doc, "SHEET: Summary")
	assert.Contains(t, doc, "SHEET: Detail")
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, 2, strings.Count(doc, "SHEET DOCUMENTATION BODY"))
}

func TestGenerateSheetFailureIsInline(t *testing.T) {
	records := []formula.Record{
		rec("Good", "A1", "=1+1", ""),
		rec("Bad", "B1", "=2+2", ""),
	}
	provider := &scriptedProvider{body: "ok", failFor: `"Bad"`}

	doc, err := Generate(context.Background(), provider, records, Options{})
	require.NoError(t, err, "a single sheet failing must not abort the run")

	assert.Contains(t, doc, "Error generating documentation for Bad: backend unavailable")
	assert.Contains(t, doc, "SHEET: Good")
}
