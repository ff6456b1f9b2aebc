// Package reftable gives read-only access to the authority reference dataset.
//
// Rows are addressed by their integer row number and columns by spreadsheet
// column letters ("A", "P", "AK"). Missing rows and columns are a normal
// outcome and are reported through the boolean results, never as errors.
package reftable

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Accessor returns reference rows by row number.
type Accessor interface {
	Row(n int) (Row, bool)
}

// Value is a raw cell value: either a number or a piece of text.
type Value struct {
	num    float64
	text   string
	isText bool
}

// Number builds a numeric Value.
func Number(f float64) Value { return Value{num: f} }

// Text builds a textual Value.
func Text(s string) Value { return Value{text: s, isText: true} }

var plainDecimal = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Parse builds a Value from raw cell text. Plain decimal numbers ("250",
// "-1.5") become numeric values. Everything else, including "nan", "+5" and
// exponent forms, is kept as text.
func Parse(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Text("")
	}
	if !plainDecimal.MatchString(s) {
		return Text(raw)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
		return Number(f)
	}
	return Text(raw)
}

// IsText reports whether v holds text.
func (v Value) IsText() bool { return v.isText }

// Float returns the numeric value. Text is parsed when it holds a number.
func (v Value) Float() (float64, bool) {
	if !v.isText {
		return v.num, !math.IsNaN(v.num)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Truthy reports whether the value carries data for projection purposes.
// Empty text, zero and NaN are not truthy.
func (v Value) Truthy() bool {
	if v.isText {
		return v.text != ""
	}
	return v.num != 0 && !math.IsNaN(v.num)
}

// String renders numbers in their shortest form ("10", "2.5").
func (v Value) String() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// Row is a sparse mapping of column letters to values.
type Row map[string]Value

// Get returns the value stored under col. Column letters are case-insensitive.
func (r Row) Get(col string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r[strings.ToUpper(col)]
	return v, ok
}

// Table is an immutable in-memory Accessor.
type Table struct {
	rows map[int]Row
}

// NewTable copies rows into a new Table. Column keys are upper-cased.
func NewTable(rows map[int]Row) *Table {
	t := &Table{rows: make(map[int]Row, len(rows))}
	for n, r := range rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[strings.ToUpper(k)] = v
		}
		t.rows[n] = cp
	}
	return t
}

// Row implements Accessor.
func (t *Table) Row(n int) (Row, bool) {
	if t == nil {
		return nil, false
	}
	r, ok := t.rows[n]
	return r, ok
}

// Len returns the number of populated rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// ColumnRange expands an inclusive column letter range such as "P".."Y".
func ColumnRange(from, to string) ([]string, error) {
	start, err := excelize.ColumnNameToNumber(from)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", from, err)
	}
	end, err := excelize.ColumnNameToNumber(to)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", to, err)
	}
	if end < start {
		return nil, fmt.Errorf("column range %s..%s is reversed", from, to)
	}
	cols := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		name, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, nil
}

// MustColumnRange is like ColumnRange but panics on error. It is meant for
// package level tables.
func MustColumnRange(from, to string) []string {
	cols, err := ColumnRange(from, to)
	if err != nil {
		panic(err)
	}
	return cols
}
