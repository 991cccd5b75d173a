package table

// Type distinguishes declared tables from detected ones.
type Type string

const (
	// TypeExplicit marks a table the worksheet declares itself.
	TypeExplicit Type = "explicit"
	// TypeImplicit marks a table inferred from cell layout.
	TypeImplicit Type = "implicit"
)

// Region is one table region within a sheet. Headers are positional: the
// header at ordinal k names column Bounds.C1+k, and the list may be shorter
// than the region is wide.
type Region struct {
	Name      string // declared name; empty for implicit and unnamed tables
	TableName string // effective name, synthesized ("Table N") when undeclared
	Type      Type
	Bounds    Range
	Headers   []string
	HeaderRow int // 1-based sheet row holding the headers
	RowCount  int // data rows below the header within the bounds
}

// Registry is a sheet's merged, queryable set of table regions. Explicit
// regions always precede implicit ones in lookup order; the grid build
// guarantees the two kinds never overlap.
type Registry struct {
	Sheet    string
	Explicit []Region
	Implicit []Region
}

// FindOwner returns the region owning the 1-based cell together with the
// header naming its column. header may be empty when the cell sits in a
// column past the region's header list; callers must tolerate that.
func (reg *Registry) FindOwner(row, col int) (region *Region, header string, ok bool) {
	for i := range reg.Explicit {
		if r := &reg.Explicit[i]; r.Bounds.Contains(row, col) {
			return r, headerAt(r, col), true
		}
	}
	for i := range reg.Implicit {
		if r := &reg.Implicit[i]; r.Bounds.Contains(row, col) {
			return r, headerAt(r, col), true
		}
	}
	return nil, "", false
}

func headerAt(r *Region, col int) string {
	k := col - r.Bounds.C1
	if k >= 0 && k < len(r.Headers) {
		return r.Headers[k]
	}
	return ""
}

// All returns every region, explicit first, in registration order.
func (reg *Registry) All() []Region {
	out := make([]Region, 0, len(reg.Explicit)+len(reg.Implicit))
	out = append(out, reg.Explicit...)
	out = append(out, reg.Implicit...)
	return out
}
