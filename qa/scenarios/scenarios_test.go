package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/evsizer/core/model"
	"github.com/kilianp07/evsizer/core/sizing/sizingtest"
)

func TestScenario(t *testing.T) {
	scs, err := LoadAll("testdata")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(scs) == 0 {
		t.Fatal("no scenarios found")
	}
	for _, sc := range scs {
		t.Run(sc.Name, func(t *testing.T) {
			failures, err := Run(sc, nil)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, f := range failures {
				t.Error(f)
			}
		})
	}
}

func TestRunReportsMismatches(t *testing.T) {
	want := "999"
	sc := &Scenario{
		Name: "wrong capacity",
		Request: model.StationRequest{
			Authority: model.AuthorityPEA,
			Chargers:  []model.ChargerClass{"80 kW"},
			Count:     3,
			TRWiring:  model.TRConduitAir,
			MDBWiring: model.MDBConduitAir,
		},
		Expected: Expected{TransformerCapacityKVA: &want, SubBreakers: []string{"x"}},
	}
	failures, err := Run(sc, sizingtest.Table())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures got %v", failures)
	}

	sc.Expected = Expected{Error: true}
	failures, _ = Run(sc, sizingtest.Table())
	if len(failures) != 1 {
		t.Fatalf("expected missing error failure got %v", failures)
	}

	if _, err := Run(sc, nil); err != ErrNoReference {
		t.Fatalf("expected ErrNoReference got %v", err)
	}
}

func TestRunAll(t *testing.T) {
	scs, err := LoadAll("testdata/pea_uniform_80x3.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	results := RunAll(scs, nil)
	if len(results) != 1 || !results[0].Passed() {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	tmp, err := os.CreateTemp(t.TempDir(), "bad*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmp.WriteString(":"); err != nil {
		t.Fatal(err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmp.Name()); err == nil {
		t.Fatal("expected unmarshal error")
	}
	if _, err := LoadAll(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestTableRejectsUnsupportedValues(t *testing.T) {
	sc := &Scenario{Rows: map[int]map[string]any{1: {"A": []any{1}}}}
	if _, err := sc.Table(); err == nil {
		t.Fatal("expected error for list cell")
	}
	sc.Rows = map[int]map[string]any{1: {"A": 2, "B": "x", "C": 1.5, "D": nil}}
	table, err := sc.Table()
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	row, ok := table.Row(1)
	if !ok {
		t.Fatal("row 1 missing")
	}
	if v, _ := row.Get("C"); v.String() != "1.5" {
		t.Fatalf("unexpected C value %v", v)
	}
}
