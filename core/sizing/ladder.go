package sizing

import (
	"fmt"
	"math"
)

// Step is one tier of a Ladder: values up to and including Ceiling map to Row.
type Step struct {
	Ceiling float64 `json:"ceiling"`
	Row     int     `json:"row"`
}

// Ladder is an ascending list of capacity tiers.
type Ladder struct {
	unit  string
	steps []Step
}

// NewLadder validates that ceilings are finite and strictly increasing.
func NewLadder(unit string, steps ...Step) (Ladder, error) {
	for i, s := range steps {
		if math.IsNaN(s.Ceiling) || math.IsInf(s.Ceiling, 0) {
			return Ladder{}, fmt.Errorf("ladder step %d: ceiling must be finite", i)
		}
		if i > 0 && s.Ceiling <= steps[i-1].Ceiling {
			return Ladder{}, fmt.Errorf("ladder step %d: ceiling %v not above %v", i, s.Ceiling, steps[i-1].Ceiling)
		}
	}
	return Ladder{unit: unit, steps: append([]Step(nil), steps...)}, nil
}

// MustLadder is like NewLadder but panics on invalid input.
func MustLadder(unit string, steps ...Step) Ladder {
	l, err := NewLadder(unit, steps...)
	if err != nil {
		panic(err)
	}
	return l
}

// Resolve returns the row of the first step whose ceiling is >= v. The
// boundary is inclusive. ok is false when v exceeds every ceiling.
func (l Ladder) Resolve(v float64) (row int, ok bool) {
	for _, s := range l.steps {
		if s.Ceiling >= v {
			return s.Row, true
		}
	}
	return 0, false
}

// Unit is the unit of the ceilings, e.g. "kVA" or "A".
func (l Ladder) Unit() string { return l.unit }

// Steps returns a copy of the ladder steps.
func (l Ladder) Steps() []Step { return append([]Step(nil), l.steps...) }

// Rows returns the row numbers in ladder order.
func (l Ladder) Rows() []int {
	rows := make([]int, len(l.steps))
	for i, s := range l.steps {
		rows[i] = s.Row
	}
	return rows
}
