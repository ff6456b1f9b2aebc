// Package workbook loads the authority reference workbook into a
// reftable.Table. The workbook is read from a local path or fetched over
// http(s), optionally with OAuth2 client credentials.
package workbook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/evsizer/auth"
	"github.com/kilianp07/evsizer/config"
	"github.com/kilianp07/evsizer/core/reftable"
	"github.com/kilianp07/evsizer/infra/logger"
)

// maxDownload bounds the size of a fetched workbook.
const maxDownload = 64 << 20

// Info describes a loaded workbook.
type Info struct {
	Source   string
	Sheet    string
	Rows     int
	Duration time.Duration
}

// Load reads the workbook described by cfg.
func Load(ctx context.Context, cfg config.ReferenceConfig) (*reftable.Table, Info, error) {
	start := time.Now()
	if cfg.Source == "" {
		return nil, Info{}, fmt.Errorf("reference source is required")
	}
	if cfg.Timeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout())
		defer cancel()
	}
	f, err := open(ctx, cfg)
	if err != nil {
		return nil, Info{}, err
	}
	defer f.Close()

	sheet := cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := ReadSheet(f, sheet, cfg.RowOffset)
	if err != nil {
		return nil, Info{}, err
	}
	table := reftable.NewTable(rows)
	info := Info{Source: cfg.Source, Sheet: sheet, Rows: table.Len(), Duration: time.Since(start)}
	logger.New("workbook").Infof("loaded %d reference rows from %s (%s) in %s", info.Rows, info.Source, sheet, info.Duration)
	return table, info, nil
}

func open(ctx context.Context, cfg config.ReferenceConfig) (*excelize.File, error) {
	if !isRemote(cfg.Source) {
		f, err := excelize.OpenFile(cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", cfg.Source, err)
		}
		return f, nil
	}
	data, err := fetch(ctx, cfg)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse workbook %s: %w", cfg.Source, err)
	}
	return f, nil
}

func isRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func fetch(ctx context.Context, cfg config.ReferenceConfig) ([]byte, error) {
	client := &http.Client{Timeout: cfg.Timeout()}
	if cfg.Auth.Enabled() {
		client = auth.NewClientCred(cfg.Auth).HTTPClient(ctx, client)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch workbook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch workbook: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	if len(data) > maxDownload {
		return nil, fmt.Errorf("workbook exceeds %d bytes", maxDownload)
	}
	return data, nil
}

// ReadSheet converts a sheet into reference rows keyed by zero based row
// index plus offset. Cells are read as raw values so numbers keep their
// stored precision, and string cells stay text even when they look numeric.
// Blank cells and fully blank rows are skipped.
func ReadSheet(f *excelize.File, sheet string, offset int) (map[int]reftable.Row, error) {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	rows := make(map[int]reftable.Row, len(raw))
	for i, cells := range raw {
		var row reftable.Row
		for j, cell := range cells {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			col, err := excelize.ColumnNumberToName(j + 1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, col+strconv.Itoa(i+1))
			if err != nil {
				return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
			}
			if row == nil {
				row = reftable.Row{}
			}
			switch typ {
			case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
				row[col] = reftable.Text(cell)
			default:
				row[col] = reftable.Parse(cell)
			}
		}
		if row != nil {
			rows[i+offset] = row
		}
	}
	return rows, nil
}
