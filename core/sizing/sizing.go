package sizing

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/evsizer/core/logger"
	"github.com/kilianp07/evsizer/core/model"
	"github.com/kilianp07/evsizer/core/reftable"
)

// ErrInvalidRequest is returned, wrapped, for structurally invalid requests.
var ErrInvalidRequest = model.ErrInvalidRequest

// Resolver computes sizing results. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	log logger.Logger
}

// NewResolver returns a Resolver logging policy decisions to log. A nil
// logger discards them.
func NewResolver(log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Resolver{log: log}
}

var defaultResolver = NewResolver(nil)

// ComputeSizing resolves req against table with a silent Resolver.
func ComputeSizing(req model.StationRequest, table reftable.Accessor) (model.SizingResult, error) {
	return defaultResolver.Compute(req, table)
}

// position is one charger slot resolved against the registry and the table.
type position struct {
	class    model.ChargerClass
	empty    bool
	ratingKW float64
	known    bool
	row      reftable.Row
	current  float64
}

// Compute resolves req against table. Missing reference data degrades to
// placeholders; only an invalid request returns an error.
func (r *Resolver) Compute(req model.StationRequest, table reftable.Accessor) (model.SizingResult, error) {
	req, err := req.Canonical()
	if err != nil {
		return model.SizingResult{}, err
	}
	profile, _ := ProfileFor(req.Authority)

	positions := r.resolvePositions(req, profile, table)

	var ratings, currents []float64
	var occupied []position
	for _, p := range positions {
		if p.empty {
			continue
		}
		ratings = append(ratings, p.ratingKW)
		currents = append(currents, p.current)
		occupied = append(occupied, p)
	}

	res := model.SizingResult{
		Authority:         req.Authority,
		Mode:              req.Mode,
		AggregatePowerKW:  floats.Sum(ratings),
		AggregateCurrentA: floats.Sum(currents),
	}
	res.ApparentPowerKVA = apparentPower(res.AggregateCurrentA)

	// Mixed stations only report a per-charger current when a single
	// position is occupied.
	if req.Mode == model.ModeUniform || len(occupied) == 1 {
		cur := occupied[0].current
		res.PerChargerCurrentA = &cur
	}

	res.TransformerCapacityKVA = model.Placeholder
	if n, ok := profile.Capacity.Resolve(res.AggregatePowerKW); ok {
		if s := Project(rowAt(table, n), []string{profile.CapacityColumn}); s != "" {
			res.TransformerCapacityKVA = s
		}
	}

	res.TRCableSpec, res.TRConduitSpec = model.Placeholder, model.Placeholder
	res.MDBMainBreakerAT, res.MDBMainBreakerAF = model.Placeholder, model.Placeholder
	if n, ok := profile.Wiring.Resolve(LineCurrent(res.AggregatePowerKW)); ok {
		row := rowAt(table, n)
		seg := profile.TR[req.TRWiring]
		res.TRCableSpec = seg.Cable.Apply(row)
		res.TRConduitSpec = seg.Conduit.Apply(row)
		res.MDBMainBreakerAT = orPlaceholder(firstProjected(row, profile.BreakerAT, profile.BreakerATFallback))
		res.MDBMainBreakerAF = orPlaceholder(Project(row, []string{profile.BreakerAF}))
	}

	mdb := profile.MDB[req.MDBWiring]
	res.MDBSubBreakers = make([]string, len(positions))
	res.ChargerLines = make([]model.ChargerLine, len(positions))
	for i, p := range positions {
		line := model.ChargerLine{
			Label:       string(p.class),
			CableSpec:   model.Placeholder,
			ConduitSpec: model.Placeholder,
		}
		res.MDBSubBreakers[i] = model.Placeholder
		if !p.empty {
			line.RatingKW = p.ratingKW
		}
		if p.known {
			line.CableSpec = mdb.Cable.Apply(p.row)
			line.ConduitSpec = mdb.Conduit.Apply(p.row)
			res.MDBSubBreakers[i] = orPlaceholder(Project(p.row, []string{profile.SubBreakerColumn}))
		}
		res.ChargerLines[i] = line
	}
	res.ChargerGroups = Group(res.ChargerLines)

	r.log.Debugw("sizing computed", map[string]any{
		"authority":   string(req.Authority),
		"mode":        string(req.Mode),
		"positions":   len(positions),
		"aggregateKW": res.AggregatePowerKW,
		"transformer": res.TransformerCapacityKVA,
		"groups":      len(res.ChargerGroups),
	})
	return res, nil
}

func (r *Resolver) resolvePositions(req model.StationRequest, profile *Profile, table reftable.Accessor) []position {
	classes := req.Positions()
	cache := make(map[model.ChargerClass]position, len(classes))
	out := make([]position, len(classes))
	for i, c := range classes {
		if c.Empty() {
			out[i] = position{class: c, empty: true}
			continue
		}
		if p, ok := cache[c]; ok {
			out[i] = p
			continue
		}
		p := position{class: c}
		var parsed bool
		p.ratingKW, parsed = parseRating(c)
		if !parsed {
			r.log.Infof("charger class %q has no rating, using %v kW", c, FallbackRatingKW)
		}
		if n, ok := RowFor(c, req.Authority); ok {
			p.known = true
			p.row = rowAt(table, n)
			if v, ok := p.row.Get(profile.CurrentColumn); ok {
				if f, ok := v.Float(); ok {
					p.current = f
				}
			}
		} else {
			r.log.Warnf("charger class %q has no %s reference row", c, req.Authority)
		}
		cache[c] = p
		out[i] = p
	}
	return out
}

func rowAt(table reftable.Accessor, n int) reftable.Row {
	if table == nil {
		return nil
	}
	row, ok := table.Row(n)
	if !ok {
		return nil
	}
	return row
}

func firstProjected(row reftable.Row, cols ...string) string {
	for _, c := range cols {
		if c == "" {
			continue
		}
		if s := Project(row, []string{c}); s != "" {
			return s
		}
	}
	return ""
}

func orPlaceholder(s string) string {
	if s == "" {
		return model.Placeholder
	}
	return s
}

// apparentPower is the three-phase apparent power in kVA of a 400 V line
// current, rounded to two decimals.
func apparentPower(currentA float64) float64 {
	kva := decimal.NewFromFloat(currentA).
		Mul(decimal.NewFromFloat(math.Sqrt(3))).
		Mul(decimal.NewFromFloat(nominalVoltage)).
		Div(decimal.NewFromInt(1000)).
		Round(2)
	f, _ := kva.Float64()
	return f
}
