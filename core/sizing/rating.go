package sizing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kilianp07/evsizer/core/model"
)

// FallbackRatingKW is used for labels without any digits. Totals depend on it
// so it is applied silently rather than rejected.
const FallbackRatingKW = 50.0

var digitRun = regexp.MustCompile(`\d+`)

// ParseRating extracts the first run of decimal digits of label as kW.
func ParseRating(label model.ChargerClass) float64 {
	kw, _ := parseRating(label)
	return kw
}

func parseRating(label model.ChargerClass) (float64, bool) {
	m := digitRun.FindString(string(label))
	if m == "" {
		return FallbackRatingKW, false
	}
	kw, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return FallbackRatingKW, false
	}
	return kw, true
}

// CatalogEntry describes a charger class offered to users.
type CatalogEntry struct {
	Label    model.ChargerClass `json:"label"`
	RatingKW float64            `json:"ratingKW"`
}

type classRows struct {
	label model.ChargerClass
	rows  map[model.Authority]int
	// hidden classes resolve but are not offered in the catalog.
	hidden bool
}

var chargerRows = []classRows{
	{label: "30 kW", rows: map[model.Authority]int{model.AuthorityMEA: 6, model.AuthorityPEA: 54}},
	{label: "40 kW", rows: map[model.Authority]int{model.AuthorityMEA: 7, model.AuthorityPEA: 55}},
	{label: "60 kW", rows: map[model.Authority]int{model.AuthorityMEA: 8, model.AuthorityPEA: 56}},
	{label: "80 kW", rows: map[model.Authority]int{model.AuthorityMEA: 9, model.AuthorityPEA: 57}},
	{label: "120 kW", rows: map[model.Authority]int{model.AuthorityMEA: 10, model.AuthorityPEA: 58}},
	{label: "160 kW", rows: map[model.Authority]int{model.AuthorityMEA: 11, model.AuthorityPEA: 59}},
	{label: "200 kW", rows: map[model.Authority]int{model.AuthorityMEA: 12, model.AuthorityPEA: 60}},
	{label: "240 kW", rows: map[model.Authority]int{model.AuthorityMEA: 13, model.AuthorityPEA: 61}},
	{label: "320 kW", rows: map[model.Authority]int{model.AuthorityMEA: 14, model.AuthorityPEA: 62}},
	{label: "360 kW", rows: map[model.Authority]int{model.AuthorityMEA: 15, model.AuthorityPEA: 63}, hidden: true},
	{label: "480 kW", rows: map[model.Authority]int{model.AuthorityMEA: 16, model.AuthorityPEA: 64}},
	{label: "600 kW", rows: map[model.Authority]int{model.AuthorityMEA: 17, model.AuthorityPEA: 65}},
	{label: "600 kW Prime+", rows: map[model.Authority]int{model.AuthorityMEA: 18, model.AuthorityPEA: 66}},
	{label: "640 kW Prime+", rows: map[model.Authority]int{model.AuthorityMEA: 19, model.AuthorityPEA: 67}},
	{label: "720 kW Prime+", rows: map[model.Authority]int{model.AuthorityMEA: 21, model.AuthorityPEA: 69}},
	{label: "800 kW Prime+", rows: map[model.Authority]int{model.AuthorityMEA: 23, model.AuthorityPEA: 71}},
}

var rowIndex = buildRowIndex(chargerRows)

func buildRowIndex(classes []classRows) map[model.ChargerClass]map[model.Authority]int {
	idx := make(map[model.ChargerClass]map[model.Authority]int, len(classes))
	for _, c := range classes {
		if _, dup := idx[c.label]; dup {
			panic(fmt.Sprintf("sizing: duplicate charger class %q", c.label))
		}
		for _, a := range model.Authorities {
			if _, ok := c.rows[a]; !ok {
				panic(fmt.Sprintf("sizing: charger class %q has no %s row", c.label, a))
			}
		}
		idx[c.label] = c.rows
	}
	return idx
}

// RowFor returns the reference row of label for authority.
func RowFor(label model.ChargerClass, authority model.Authority) (int, bool) {
	rows, ok := rowIndex[model.ChargerClass(strings.TrimSpace(string(label)))]
	if !ok {
		return 0, false
	}
	n, ok := rows[authority]
	return n, ok
}

// Catalog returns the charger classes offered to users in display order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(chargerRows))
	for _, c := range chargerRows {
		if c.hidden {
			continue
		}
		out = append(out, CatalogEntry{Label: c.label, RatingKW: ParseRating(c.label)})
	}
	return out
}

// StationCatalog lists every choice a station request can make.
type StationCatalog struct {
	Authorities      []model.Authority  `json:"authorities"`
	Modes            []model.Mode       `json:"modes"`
	Chargers         []CatalogEntry     `json:"chargers"`
	TRWiringMethods  []model.MethodInfo `json:"trWiringMethods"`
	MDBWiringMethods []model.MethodInfo `json:"mdbWiringMethods"`
}

// FullCatalog returns the station catalog.
func FullCatalog() StationCatalog {
	return StationCatalog{
		Authorities:      append([]model.Authority(nil), model.Authorities...),
		Modes:            []model.Mode{model.ModeUniform, model.ModeMixed},
		Chargers:         Catalog(),
		TRWiringMethods:  model.TRMethods(),
		MDBWiringMethods: model.MDBMethods(),
	}
}
