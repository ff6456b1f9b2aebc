package sizing

import (
	"strings"

	"github.com/kilianp07/evsizer/core/reftable"
)

// Projection is the ordered column list of one (authority, method, segment)
// combination and the unit appended to non-empty results.
type Projection struct {
	Columns []string
	Unit    string
}

// Apply projects row through p.
func (p Projection) Apply(row reftable.Row) string {
	return ProjectWithUnit(row, p.Columns, p.Unit)
}

// Project joins the truthy values of keys with single spaces. A nil row or a
// row without any truthy value projects to "".
func Project(row reftable.Row, keys []string) string {
	if row == nil {
		return ""
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := row.Get(k)
		if !ok || !v.Truthy() {
			continue
		}
		parts = append(parts, v.String())
	}
	return strings.Join(parts, " ")
}

// ProjectWithUnit is Project followed by " "+unit when the result is not empty.
func ProjectWithUnit(row reftable.Row, keys []string, unit string) string {
	s := Project(row, keys)
	if s == "" || unit == "" {
		return s
	}
	return s + " " + unit
}

func span(from, to string) []string { return reftable.MustColumnRange(from, to) }
