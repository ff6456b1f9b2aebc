package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evsizer/config"
	"github.com/kilianp07/evsizer/core/factory"
	"github.com/kilianp07/evsizer/core/sizing/sizingtest"
)

// writeFixtureWorkbook stores the sizing fixture rows as an xlsx file.
func writeFixtureWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reference.xlsx")
	require.NoError(t, sizingtest.WriteWorkbook(path))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Reference.Source = writeFixtureWorkbook(t)
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestServiceSizesFromWorkbook(t *testing.T) {
	svc, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer svc.Close()

	srv := httptest.NewServer(svc.Handler())
	defer srv.Close()
	svc.ready.Store(true)

	body := `{"authority":"PEA","chargers":["80 kW"],"count":3,"trWiringMethod":"tray","mdbWiringMethod":"conduit_air"}`
	resp, err := http.Post(srv.URL+"/api/sizing?format=csv", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	svc, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
	require.NoError(t, svc.Close())
}

func TestNewFailsWithoutReference(t *testing.T) {
	cfg := &config.Config{}
	cfg.SetDefaults()
	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}
