package scenarios

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/evsizer/core/model"
	"github.com/kilianp07/evsizer/core/reftable"
)

// Expected lists the result fields a scenario checks. Unset fields are not
// checked.
type Expected struct {
	Error                  bool       `yaml:"error,omitempty"`
	AggregatePowerKW       *float64   `yaml:"aggregate_power_kw,omitempty"`
	AggregateCurrentA      *float64   `yaml:"aggregate_current_a,omitempty"`
	PerChargerCurrentA     *float64   `yaml:"per_charger_current_a,omitempty"`
	TransformerCapacityKVA *string    `yaml:"transformer_capacity_kva,omitempty"`
	TRCableSpec            *string    `yaml:"tr_cable_spec,omitempty"`
	TRConduitSpec          *string    `yaml:"tr_conduit_spec,omitempty"`
	MDBMainBreakerAT       *string    `yaml:"mdb_main_breaker_at,omitempty"`
	MDBMainBreakerAF       *string    `yaml:"mdb_main_breaker_af,omitempty"`
	SubBreakers            []string   `yaml:"sub_breakers,omitempty"`
	Groups                 [][]int    `yaml:"groups,omitempty"`
	DisplayLines           []string   `yaml:"display_lines,omitempty"`
	CableSpecs             []string   `yaml:"cable_specs,omitempty"`
	ConduitOptions         [][]string `yaml:"conduit_options,omitempty"`
}

// Scenario is one request with its expected result. Rows, when present,
// replace the configured reference workbook.
type Scenario struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Request     model.StationRequest   `yaml:"request"`
	Rows        map[int]map[string]any `yaml:"rows,omitempty"`
	Expected    Expected               `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = filepath.Base(path)
	}
	return &sc, nil
}

// LoadAll loads every *.yaml and *.yml file of the given files and
// directories, sorted by path.
func LoadAll(paths ...string) ([]*Scenario, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			m, err := filepath.Glob(filepath.Join(p, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, m...)
		}
	}
	sort.Strings(files)
	out := make([]*Scenario, 0, len(files))
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// Table builds the inline reference rows, or returns nil when there are none.
func (s *Scenario) Table() (*reftable.Table, error) {
	if len(s.Rows) == 0 {
		return nil, nil
	}
	rows := make(map[int]reftable.Row, len(s.Rows))
	for n, cells := range s.Rows {
		row := make(reftable.Row, len(cells))
		for col, v := range cells {
			val, err := toValue(v)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", n, col, err)
			}
			row[col] = val
		}
		rows[n] = row
	}
	return reftable.NewTable(rows), nil
}

func toValue(v any) (reftable.Value, error) {
	switch x := v.(type) {
	case nil:
		return reftable.Text(""), nil
	case string:
		return reftable.Text(x), nil
	case int:
		return reftable.Number(float64(x)), nil
	case float64:
		return reftable.Number(x), nil
	}
	return reftable.Value{}, fmt.Errorf("unsupported cell value %T", v)
}
