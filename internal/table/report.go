package table

import (
	"encoding/json"
	"fmt"
	"os"
)

// ExplicitEntry is the table-report record for a declared table. The field
// set and names are a wire contract shared with downstream consumers; in
// particular explicit entries carry plural "headers" while implicit ones
// carry singular "header", and both spellings must stay as they are.
type ExplicitEntry struct {
	Name      string   `json:"name"`
	TableName string   `json:"table_name"`
	Range     string   `json:"range"`
	Headers   []string `json:"headers"`
	R1        int      `json:"r1"`
	C1        int      `json:"c1"`
	R2        int      `json:"r2"`
	C2        int      `json:"c2"`
}

// ImplicitEntry is the table-report record for a detected table.
type ImplicitEntry struct {
	TableName string   `json:"table_name"`
	Range     string   `json:"range"`
	R1        int      `json:"r1"`
	C1        int      `json:"c1"`
	R2        int      `json:"r2"`
	C2        int      `json:"c2"`
	Header    []string `json:"header"`
}

// SheetTables groups one sheet's report entries.
type SheetTables struct {
	ExplicitTables []ExplicitEntry `json:"explicit_tables"`
	ImplicitTables []ImplicitEntry `json:"implicit_tables"`
}

// Report maps sheet names to their table entries.
type Report map[string]SheetTables

// ReportSheet renders a registry into its report form.
func ReportSheet(reg *Registry) SheetTables {
	st := SheetTables{
		ExplicitTables: make([]ExplicitEntry, 0, len(reg.Explicit)),
		ImplicitTables: make([]ImplicitEntry, 0, len(reg.Implicit)),
	}
	for _, r := range reg.Explicit {
		st.ExplicitTables = append(st.ExplicitTables, ExplicitEntry{
			Name:      r.Name,
			TableName: r.TableName,
			Range:     r.Bounds.String(),
			Headers:   nonNil(r.Headers),
			R1:        r.Bounds.R1,
			C1:        r.Bounds.C1,
			R2:        r.Bounds.R2,
			C2:        r.Bounds.C2,
		})
	}
	for _, r := range reg.Implicit {
		st.ImplicitTables = append(st.ImplicitTables, ImplicitEntry{
			TableName: r.TableName,
			Range:     r.Bounds.String(),
			R1:        r.Bounds.R1,
			C1:        r.Bounds.C1,
			R2:        r.Bounds.R2,
			C2:        r.Bounds.C2,
			Header:    nonNil(r.Headers),
		})
	}
	return st
}

// Registry rebuilds a queryable registry from a sheet's report entries, the
// inverse of ReportSheet. HeaderRow and RowCount are recomputed from the
// bounds under the usual first-row-is-header layout.
func (st SheetTables) Registry(sheet string) *Registry {
	reg := &Registry{Sheet: sheet}
	for _, e := range st.ExplicitTables {
		bounds := Range{R1: e.R1, C1: e.C1, R2: e.R2, C2: e.C2}
		reg.Explicit = append(reg.Explicit, Region{
			Name:      e.Name,
			TableName: e.TableName,
			Type:      TypeExplicit,
			Bounds:    bounds,
			Headers:   e.Headers,
			HeaderRow: e.R1,
			RowCount:  e.R2 - e.R1,
		})
	}
	for _, e := range st.ImplicitTables {
		bounds := Range{R1: e.R1, C1: e.C1, R2: e.R2, C2: e.C2}
		reg.Implicit = append(reg.Implicit, Region{
			TableName: e.TableName,
			Type:      TypeImplicit,
			Bounds:    bounds,
			Headers:   e.Header,
			HeaderRow: e.R1,
			RowCount:  e.R2 - e.R1,
		})
	}
	return reg
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Write saves the report as indented JSON.
func (r Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode table report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write table report: %w", err)
	}
	return nil
}

// LoadReport reads a previously written table report.
func LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read table report %s: %w", path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("could not parse table report %s: %w", path, err)
	}
	return r, nil
}
