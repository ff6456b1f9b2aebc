package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/evsizer/core/model"
)

const (
	summarySheet = "Summary"
	linesSheet   = "Charger lines"
)

// WriteXLSX writes a workbook with the bill of quantities on a summary sheet
// and one row per charger position on a second sheet.
func WriteXLSX(w io.Writer, res model.SizingResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(linesSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#212529"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeRows(f, summarySheet, []string{"Item", "Specification"}, boqRows(res)); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 26); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 48); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	if err := writeRows(f, linesSheet, []string{"#", "Charger", "Rating (kW)", "Cable", "Conduit", "Sub breaker"}, lineRows(res)); err != nil {
		return err
	}
	if err := f.SetCellStyle(linesSheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}

func boqRows(res model.SizingResult) [][]any {
	items := BOQ(res)
	out := make([][]any, len(items))
	for i, it := range items {
		out[i] = []any{it.Item, sanitizeExcelCell(it.Specification)}
	}
	return out
}

func lineRows(res model.SizingResult) [][]any {
	out := make([][]any, len(res.ChargerLines))
	for i, l := range res.ChargerLines {
		sub := model.Placeholder
		if i < len(res.MDBSubBreakers) {
			sub = res.MDBSubBreakers[i]
		}
		out[i] = []any{i + 1, sanitizeExcelCell(l.Label), l.RatingKW,
			sanitizeExcelCell(l.CableSpec), sanitizeExcelCell(l.ConduitSpec), sanitizeExcelCell(sub)}
	}
	return out
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]any) error {
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := r
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

// sanitizeExcelCell prevents formula injection. A lone "-" placeholder is kept.
func sanitizeExcelCell(s string) string {
	if len(s) < 2 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
