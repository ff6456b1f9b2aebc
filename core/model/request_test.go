package model

import (
	"errors"
	"math"
	"testing"
)

func TestStationRequestCanonical(t *testing.T) {
	req := StationRequest{
		Authority: "pea",
		Mode:      "same",
		Chargers:  []ChargerClass{" 80 kW "},
		TRWiring:  "ร้อยท่อฝังใต้ดิน กลุ่ม 5",
		MDBWiring: "CONDUIT_AIR",
	}
	got, err := req.Canonical()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Authority != AuthorityPEA || got.Mode != ModeUniform {
		t.Fatalf("unexpected authority/mode: %s/%s", got.Authority, got.Mode)
	}
	if got.TRWiring != TRConduitBuried || got.MDBWiring != MDBConduitAir {
		t.Fatalf("unexpected wiring: %s/%s", got.TRWiring, got.MDBWiring)
	}
	if got.Count != 1 {
		t.Fatalf("count 0 should default to 1, got %d", got.Count)
	}
	if got.Chargers[0] != "80 kW" {
		t.Fatalf("label not trimmed: %q", got.Chargers[0])
	}
	if req.Chargers[0] != " 80 kW " {
		t.Fatalf("receiver was modified")
	}
}

func TestStationRequestInvalid(t *testing.T) {
	base := StationRequest{Authority: AuthorityMEA, Mode: ModeUniform, Chargers: []ChargerClass{"80 kW"}, Count: 2, TRWiring: TRTray, MDBWiring: MDBConduitAir}
	checks := []struct {
		name   string
		mutate func(r *StationRequest)
	}{
		{"authority", func(r *StationRequest) { r.Authority = "EGAT" }},
		{"mode", func(r *StationRequest) { r.Mode = "random" }},
		{"tr wiring", func(r *StationRequest) { r.TRWiring = "overhead" }},
		{"mdb wiring", func(r *StationRequest) { r.MDBWiring = "tray" }},
		{"negative count", func(r *StationRequest) { r.Count = -1 }},
		{"count above max", func(r *StationRequest) { r.Count = MaxChargers + 1 }},
		{"huge count", func(r *StationRequest) { r.Count = math.MaxInt }},
		{"too many positions", func(r *StationRequest) {
			r.Mode = ModeMixed
			r.Chargers = make([]ChargerClass, MaxChargers+1)
			for i := range r.Chargers {
				r.Chargers[i] = "80 kW"
			}
		}},
		{"no label", func(r *StationRequest) { r.Chargers = nil }},
		{"two classes", func(r *StationRequest) { r.Chargers = []ChargerClass{"80 kW", "120 kW"} }},
		{"mixed empty", func(r *StationRequest) {
			r.Mode = ModeMixed
			r.Chargers = []ChargerClass{"", " "}
		}},
	}
	for _, c := range checks {
		r := base
		r.Chargers = append([]ChargerClass(nil), base.Chargers...)
		c.mutate(&r)
		if _, err := r.Canonical(); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%s: expected ErrInvalidRequest, got %v", c.name, err)
		}
	}
	if _, err := base.Canonical(); err != nil {
		t.Fatalf("base request should be valid: %v", err)
	}
	full := base
	full.Count = MaxChargers
	if _, err := full.Canonical(); err != nil {
		t.Fatalf("count %d should be valid: %v", MaxChargers, err)
	}
}

func TestStationRequestPositions(t *testing.T) {
	uniform := StationRequest{Mode: ModeUniform, Chargers: []ChargerClass{"80 kW"}, Count: 3}
	pos := uniform.Positions()
	if len(pos) != 3 || pos[0] != "80 kW" || pos[2] != "80 kW" {
		t.Fatalf("unexpected uniform positions: %v", pos)
	}

	mixed := StationRequest{Mode: ModeMixed, Chargers: []ChargerClass{"80 kW", "", "120 kW"}}
	pos = mixed.Positions()
	if len(pos) != 3 || !pos[1].Empty() {
		t.Fatalf("unexpected mixed positions: %v", pos)
	}
	if mixed.Occupied() != 2 {
		t.Fatalf("expected 2 occupied positions, got %d", mixed.Occupied())
	}
	pos[0] = "changed"
	if mixed.Chargers[0] != "80 kW" {
		t.Fatalf("Positions must return a copy")
	}
}

func TestParseMethodsAndAuthority(t *testing.T) {
	if _, err := ParseAuthority("egat"); err == nil {
		t.Fatalf("expected error for unknown authority")
	}
	if m, err := ParseMode("any"); err != nil || m != ModeMixed {
		t.Fatalf("any should map to mixed: %v %v", m, err)
	}
	if m, err := ParseTRWiringMethod("Open cable ladder"); err != nil || m != TRLadder {
		t.Fatalf("label should resolve: %v %v", m, err)
	}
	if TRWiringMethod("ราง TRAY ไม่มีฝา").Valid() {
		t.Fatalf("aliases are not canonical keys")
	}
	if len(TRMethods()) != 4 || len(MDBMethods()) != 2 {
		t.Fatalf("unexpected method catalogs")
	}
}
