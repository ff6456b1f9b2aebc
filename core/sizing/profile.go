package sizing

import (
	"fmt"
	"math"
	"slices"

	"github.com/kilianp07/evsizer/core/model"
)

// Units appended to conduit projections.
const (
	unitInch       = "นิ้ว"
	unitMillimetre = "มม."
	unitCentimetre = "ซม."
)

// nominalVoltage is the three-phase line voltage the wiring ladder is built for.
const nominalVoltage = 400.0

// Segment holds the cable and conduit projections of one wiring method.
type Segment struct {
	Cable   Projection
	Conduit Projection
}

// Profile is the reference dataset layout of one authority.
type Profile struct {
	Authority model.Authority
	// Capacity is keyed in kVA and selects the transformer row.
	Capacity Ladder
	// Wiring is keyed in amperes and selects the row carrying the TR cable
	// and main breaker specifications.
	Wiring Ladder

	CapacityColumn    string
	CurrentColumn     string
	BreakerAT         string
	BreakerATFallback string
	BreakerAF         string
	SubBreakerColumn  string

	TR  map[model.TRWiringMethod]Segment
	MDB map[model.MDBWiringMethod]Segment
}

// LineCurrent converts a three-phase power in kW to its line current in A.
func LineCurrent(kw float64) float64 {
	return kw * 1000 / (math.Sqrt(3) * nominalVoltage)
}

func steps(firstRow int, ceilings ...float64) []Step {
	out := make([]Step, len(ceilings))
	for i, c := range ceilings {
		out[i] = Step{Ceiling: c, Row: firstRow + i}
	}
	return out
}

var trSegments = map[model.TRWiringMethod]Segment{
	model.TRConduitAir: {
		Cable:   Projection{Columns: span("P", "Y")},
		Conduit: Projection{Columns: span("AG", "AJ"), Unit: unitInch},
	},
	model.TRConduitBuried: {
		Cable:   Projection{Columns: span("AK", "AT")},
		Conduit: Projection{Columns: span("BB", "BD"), Unit: unitMillimetre},
	},
	model.TRTray: {
		Cable:   Projection{Columns: span("BF", "BO")},
		Conduit: Projection{Columns: span("BW", "BW"), Unit: unitCentimetre},
	},
	model.TRLadder: {
		Cable:   Projection{Columns: span("CA", "CJ")},
		Conduit: Projection{Columns: span("CR", "CR"), Unit: unitCentimetre},
	},
}

var profiles = map[model.Authority]*Profile{
	model.AuthorityMEA: {
		Authority: model.AuthorityMEA,
		Capacity: MustLadder("kVA", steps(33,
			307.7, 384.6, 484.6, 615.4, 769.2, 961.5, 1153.8, 1538.5, 1923.1)...),
		Wiring: MustLadder("A", steps(33,
			444.1, 555.1, 699.4, 888.2, 1110.3, 1387.8, 1665.4, 2220.6, 2775.7)...),
		CapacityColumn:    "A",
		CurrentColumn:     "C",
		BreakerAT:         "L",
		BreakerATFallback: "N",
		BreakerAF:         "O",
		SubBreakerColumn:  "AD",
		TR:                trSegments,
		MDB: map[model.MDBWiringMethod]Segment{
			model.MDBConduitAir: {
				Cable:   Projection{Columns: span("AH", "AT")},
				Conduit: Projection{Columns: span("AY", "BD"), Unit: unitInch},
			},
			model.MDBConduitBuried: {
				Cable:   Projection{Columns: span("BF", "BR")},
				Conduit: Projection{Columns: span("BW", "CB"), Unit: unitMillimetre},
			},
		},
	},
	model.AuthorityPEA: {
		Authority: model.AuthorityPEA,
		Capacity: MustLadder("kVA", steps(76,
			80, 128, 200, 252, 320, 400, 504, 640, 800, 1000, 1200, 1597, 2000)...),
		Wiring: MustLadder("A", steps(76,
			115.4, 184.7, 288.6, 363.7, 461.8, 577.3, 727.4, 923.7, 1154.7, 1443.4, 1732.1, 2305.4, 2886.8)...),
		CapacityColumn:    "A",
		CurrentColumn:     "C",
		BreakerAT:         "L",
		BreakerATFallback: "N",
		BreakerAF:         "O",
		SubBreakerColumn:  "AB",
		TR:                trSegments,
		MDB: map[model.MDBWiringMethod]Segment{
			model.MDBConduitAir: {
				Cable:   Projection{Columns: span("AF", "AR")},
				Conduit: Projection{Columns: span("AW", "BB"), Unit: unitInch},
			},
			model.MDBConduitBuried: {
				Cable:   Projection{Columns: span("BD", "BP")},
				Conduit: Projection{Columns: span("BU", "BZ"), Unit: unitMillimetre},
			},
		},
	},
}

func init() {
	if err := validateProfiles(profiles); err != nil {
		panic(err)
	}
}

func validateProfiles(ps map[model.Authority]*Profile) error {
	for _, a := range model.Authorities {
		p, ok := ps[a]
		if !ok || p == nil {
			return fmt.Errorf("sizing: no profile for authority %s", a)
		}
		if err := p.validate(); err != nil {
			return fmt.Errorf("sizing: profile %s: %w", a, err)
		}
	}
	return nil
}

func (p *Profile) validate() error {
	if len(p.Capacity.steps) == 0 {
		return fmt.Errorf("empty capacity ladder")
	}
	if !slices.Equal(p.Capacity.Rows(), p.Wiring.Rows()) {
		return fmt.Errorf("capacity and wiring ladders address different rows")
	}
	for _, col := range []string{p.CapacityColumn, p.CurrentColumn, p.BreakerAT, p.BreakerAF, p.SubBreakerColumn} {
		if col == "" {
			return fmt.Errorf("missing fixed column")
		}
	}
	for _, m := range model.TRMethods() {
		s, ok := p.TR[model.TRWiringMethod(m.Key)]
		if !ok || len(s.Cable.Columns) == 0 || len(s.Conduit.Columns) == 0 {
			return fmt.Errorf("TR wiring method %s has no projection", m.Key)
		}
	}
	for _, m := range model.MDBMethods() {
		s, ok := p.MDB[model.MDBWiringMethod(m.Key)]
		if !ok || len(s.Cable.Columns) == 0 || len(s.Conduit.Columns) == 0 {
			return fmt.Errorf("MDB wiring method %s has no projection", m.Key)
		}
	}
	return nil
}

// ProfileFor returns the dataset layout of authority.
func ProfileFor(a model.Authority) (*Profile, bool) {
	p, ok := profiles[a]
	return p, ok
}
