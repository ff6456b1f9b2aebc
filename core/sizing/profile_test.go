package sizing

import (
	"math"
	"testing"

	"github.com/kilianp07/evsizer/core/model"
)

func TestProfilesCoverEveryCombination(t *testing.T) {
	if err := validateProfiles(profiles); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	for _, a := range model.Authorities {
		p, ok := ProfileFor(a)
		if !ok {
			t.Fatalf("missing profile %s", a)
		}
		for _, m := range model.TRMethods() {
			if _, ok := p.TR[model.TRWiringMethod(m.Key)]; !ok {
				t.Fatalf("%s: missing TR method %s", a, m.Key)
			}
		}
	}
}

func TestValidateProfilesDetectsGaps(t *testing.T) {
	mea := *profiles[model.AuthorityMEA]
	mea.MDB = map[model.MDBWiringMethod]Segment{model.MDBConduitAir: mea.MDB[model.MDBConduitAir]}
	broken := map[model.Authority]*Profile{
		model.AuthorityMEA: &mea,
		model.AuthorityPEA: profiles[model.AuthorityPEA],
	}
	if err := validateProfiles(broken); err == nil {
		t.Fatal("expected error for missing MDB method")
	}
	if err := validateProfiles(map[model.Authority]*Profile{model.AuthorityMEA: profiles[model.AuthorityMEA]}); err == nil {
		t.Fatal("expected error for missing authority")
	}
	pea := *profiles[model.AuthorityPEA]
	pea.Wiring = MustLadder("A", Step{Ceiling: 1, Row: 1})
	if err := pea.validate(); err == nil {
		t.Fatal("expected error for mismatched ladder rows")
	}
}

func TestPEAScenarioLadders(t *testing.T) {
	p, _ := ProfileFor(model.AuthorityPEA)
	if row, ok := p.Capacity.Resolve(240); !ok || row != 79 {
		t.Fatalf("expected capacity row 79 got %d %v", row, ok)
	}
	if row, ok := p.Wiring.Resolve(LineCurrent(240)); !ok || row != 79 {
		t.Fatalf("expected wiring row 79 got %d %v", row, ok)
	}
	if row, ok := p.Capacity.Resolve(252); !ok || row != 79 {
		t.Fatalf("252 kVA is the inclusive ceiling of row 79, got %d", row)
	}
}

func TestLineCurrent(t *testing.T) {
	if got := LineCurrent(277.128); math.Abs(got-400) > 0.01 {
		t.Fatalf("expected ~400 A got %v", got)
	}
}
