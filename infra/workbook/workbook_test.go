package workbook

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/evsizer/auth"
	"github.com/kilianp07/evsizer/config"
)

// newWorkbook builds a small sheet: row index 2 holds a transformer row and
// row index 3 a charger row.
func newWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	sheet := f.GetSheetName(0)
	cells := map[string]any{
		"A1":  "header",
		"A3":  250,
		"L3":  "400AT",
		"P3":  "2x(4x1C 240)",
		"Q3":  "sq.mm.",
		"AG3": 4,
		"R3":  "1.50",
		"S3":  "nan",
		"C4":  115.47,
		"AB4": "160AT/250AF",
	}
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	return f
}

func TestReadSheet(t *testing.T) {
	f := newWorkbook(t)
	rows, err := ReadSheet(f, f.GetSheetName(0), 0)
	require.NoError(t, err)

	assert.Len(t, rows, 3, "blank row index 1 is skipped")
	v, ok := rows[2].Get("A")
	require.True(t, ok)
	assert.False(t, v.IsText())
	assert.Equal(t, "250", v.String())

	c, ok := rows[3].Get("C")
	require.True(t, ok)
	got, _ := c.Float()
	assert.InDelta(t, 115.47, got, 1e-9)

	ag, _ := rows[2].Get("AG")
	assert.Equal(t, "4", ag.String())
	p, _ := rows[2].Get("P")
	assert.Equal(t, "2x(4x1C 240)", p.String())
	r, _ := rows[2].Get("R")
	assert.True(t, r.IsText(), "numeric looking string cell stays text")
	assert.Equal(t, "1.50", r.String())
	nan, _ := rows[2].Get("S")
	assert.True(t, nan.Truthy())
	assert.Equal(t, "nan", nan.String())

	shifted, err := ReadSheet(f, f.GetSheetName(0), 10)
	require.NoError(t, err)
	_, ok = shifted[12]
	assert.True(t, ok)

	_, err = ReadSheet(f, "missing", 0)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	f := newWorkbook(t)
	path := filepath.Join(t.TempDir(), "reference.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, info, err := Load(context.Background(), config.ReferenceConfig{Source: path, TimeoutSeconds: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 3, info.Rows)
	assert.Equal(t, "Sheet1", info.Sheet)
	row, ok := table.Row(3)
	require.True(t, ok)
	ab, _ := row.Get("AB")
	assert.Equal(t, "160AT/250AF", ab.String())

	_, _, err = Load(context.Background(), config.ReferenceConfig{Source: path, Sheet: "nope"})
	assert.Error(t, err)
	_, _, err = Load(context.Background(), config.ReferenceConfig{})
	assert.Error(t, err)
}

func TestLoadHTTPWithAuth(t *testing.T) {
	f := newWorkbook(t)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	}))
	defer tokens.Close()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	cfg := config.ReferenceConfig{
		Source:         srv.URL + "/reference.xlsx",
		TimeoutSeconds: 5,
		Auth:           auth.Conf{ClientID: "id", ClientSecret: "secret", AuthURL: tokens.URL},
	}
	table, _, err := Load(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	cfg.Auth = auth.Conf{}
	_, _, err = Load(context.Background(), cfg)
	assert.ErrorContains(t, err, "unexpected status")
}
