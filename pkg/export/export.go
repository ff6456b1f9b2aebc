// Package export renders a SizingResult as a report: JSON, a CSV bill of
// quantities, an XLSX workbook or a PDF summary.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/evsizer/core/model"
	"github.com/kilianp07/evsizer/core/sizing"
)

// Format identifies a report format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatXLSX, FormatPDF}

// ParseFormat accepts a format name case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatJSON, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Write renders res in the given format.
func Write(w io.Writer, f Format, res model.SizingResult) error {
	switch f {
	case FormatJSON, "":
		return WriteJSON(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatXLSX:
		return WriteXLSX(w, res)
	case FormatPDF:
		return WritePDF(w, res)
	}
	return fmt.Errorf("unknown report format %q", f)
}

// Item is one bill of quantities line.
type Item struct {
	Item          string `json:"item"`
	Specification string `json:"specification"`
}

// BOQ flattens res into bill of quantities lines in document order.
func BOQ(res model.SizingResult) []Item {
	items := []Item{
		{"Authority", string(res.Authority)},
		{"Mode", string(res.Mode)},
		{"Aggregate power", formatNumber(res.AggregatePowerKW) + " kW"},
		{"Aggregate current", formatNumber(res.AggregateCurrentA) + " A"},
		{"Apparent power", formatNumber(res.ApparentPowerKVA) + " kVA"},
	}
	if res.PerChargerCurrentA != nil {
		items = append(items, Item{"Per charger current", formatNumber(*res.PerChargerCurrentA) + " A"})
	}
	items = append(items,
		Item{"Transformer capacity", withUnit(res.TransformerCapacityKVA, "kVA")},
		Item{"TR cable", res.TRCableSpec},
		Item{"TR conduit", res.TRConduitSpec},
		Item{"MDB main breaker AT", res.MDBMainBreakerAT},
		Item{"MDB main breaker AF", res.MDBMainBreakerAF},
	)
	for i, sb := range res.MDBSubBreakers {
		items = append(items, Item{fmt.Sprintf("Sub breaker Charger%d", i+1), sb})
	}
	display := sizing.DisplayLines(res.ChargerGroups)
	for i, g := range res.ChargerGroups {
		spec := display[i]
		if len(g.ConduitOptions) > 0 {
			spec += " | " + strings.Join(g.ConduitOptions, " / ")
		}
		items = append(items, Item{"Charger cable", spec})
	}
	return items
}

// WriteJSON writes the full result to w in JSON format.
func WriteJSON(w io.Writer, res model.SizingResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the bill of quantities to w with an item,specification header.
func WriteCSV(w io.Writer, res model.SizingResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"item", "specification"}); err != nil {
		return err
	}
	for _, it := range BOQ(res) {
		if err := cw.Write([]string{it.Item, it.Specification}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// withUnit appends unit to plain numeric values only.
func withUnit(v, unit string) string {
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return v
	}
	return v + " " + unit
}
