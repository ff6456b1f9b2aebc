package scenarios

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/kilianp07/evsizer/core/reftable"
	"github.com/kilianp07/evsizer/core/sizing"
)

// ErrNoReference is returned when a scenario has no inline rows and no
// workbook was provided.
var ErrNoReference = errors.New("scenario has no reference rows")

// Run resolves the scenario and returns one message per failed expectation.
// fallback is used when the scenario carries no inline rows.
func Run(sc *Scenario, fallback reftable.Accessor) ([]string, error) {
	table, err := sc.Table()
	if err != nil {
		return nil, err
	}
	var acc reftable.Accessor = fallback
	if table != nil {
		acc = table
	}
	if acc == nil {
		return nil, ErrNoReference
	}

	res, err := sizing.ComputeSizing(sc.Request, acc)
	exp := sc.Expected
	if exp.Error {
		if err == nil {
			return []string{"expected an invalid request error"}, nil
		}
		return nil, nil
	}
	if err != nil {
		return []string{fmt.Sprintf("unexpected error: %v", err)}, nil
	}

	var failures []string
	fail := func(field string, got, want any) {
		failures = append(failures, fmt.Sprintf("%s: got %v want %v", field, got, want))
	}
	checkFloat := func(field string, got float64, want *float64) {
		if want != nil && math.Abs(got-*want) > 0.01 {
			fail(field, got, *want)
		}
	}
	checkString := func(field, got string, want *string) {
		if want != nil && got != *want {
			fail(field, fmt.Sprintf("%q", got), fmt.Sprintf("%q", *want))
		}
	}

	checkFloat("aggregate_power_kw", res.AggregatePowerKW, exp.AggregatePowerKW)
	checkFloat("aggregate_current_a", res.AggregateCurrentA, exp.AggregateCurrentA)
	if exp.PerChargerCurrentA != nil {
		if res.PerChargerCurrentA == nil {
			fail("per_charger_current_a", "unset", *exp.PerChargerCurrentA)
		} else {
			checkFloat("per_charger_current_a", *res.PerChargerCurrentA, exp.PerChargerCurrentA)
		}
	}
	checkString("transformer_capacity_kva", res.TransformerCapacityKVA, exp.TransformerCapacityKVA)
	checkString("tr_cable_spec", res.TRCableSpec, exp.TRCableSpec)
	checkString("tr_conduit_spec", res.TRConduitSpec, exp.TRConduitSpec)
	checkString("mdb_main_breaker_at", res.MDBMainBreakerAT, exp.MDBMainBreakerAT)
	checkString("mdb_main_breaker_af", res.MDBMainBreakerAF, exp.MDBMainBreakerAF)

	if exp.SubBreakers != nil && !reflect.DeepEqual(res.MDBSubBreakers, exp.SubBreakers) {
		fail("sub_breakers", res.MDBSubBreakers, exp.SubBreakers)
	}
	if exp.CableSpecs != nil {
		got := make([]string, len(res.ChargerLines))
		for i, l := range res.ChargerLines {
			got[i] = l.CableSpec
		}
		if !reflect.DeepEqual(got, exp.CableSpecs) {
			fail("cable_specs", got, exp.CableSpecs)
		}
	}
	if exp.Groups != nil {
		got := make([][]int, len(res.ChargerGroups))
		for i, g := range res.ChargerGroups {
			got[i] = g.MemberIndices
		}
		if !reflect.DeepEqual(got, exp.Groups) {
			fail("groups", got, exp.Groups)
		}
	}
	if exp.ConduitOptions != nil {
		got := make([][]string, len(res.ChargerGroups))
		for i, g := range res.ChargerGroups {
			got[i] = g.ConduitOptions
		}
		if !reflect.DeepEqual(got, exp.ConduitOptions) {
			fail("conduit_options", got, exp.ConduitOptions)
		}
	}
	if exp.DisplayLines != nil {
		if got := sizing.DisplayLines(res.ChargerGroups); !reflect.DeepEqual(got, exp.DisplayLines) {
			fail("display_lines", got, exp.DisplayLines)
		}
	}
	return failures, nil
}

// Result is the outcome of one scenario.
type Result struct {
	Name     string
	Failures []string
	Err      error
}

// Passed reports whether the scenario met every expectation.
func (r Result) Passed() bool { return r.Err == nil && len(r.Failures) == 0 }

// RunAll runs every scenario against fallback.
func RunAll(scs []*Scenario, fallback reftable.Accessor) []Result {
	out := make([]Result, len(scs))
	for i, sc := range scs {
		f, err := Run(sc, fallback)
		out[i] = Result{Name: sc.Name, Failures: f, Err: err}
	}
	return out
}
