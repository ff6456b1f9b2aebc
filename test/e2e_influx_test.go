package test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evsizer/core/factory"
	"github.com/kilianp07/evsizer/test/util"
)

func TestInfluxSinkEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()
	inf, cleanup, err := util.StartInflux(ctx)
	if err != nil {
		t.Skipf("influxdb unavailable: %v", err)
	}
	defer cleanup()

	cfg := serviceConfig(t)
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "influx", Conf: map[string]any{
		"url":    inf.URL,
		"token":  inf.Token,
		"org":    inf.Org,
		"bucket": inf.Bucket,
	}}}
	startService(t, cfg)

	resp, err := http.Post("http://"+cfg.Server.Address+"/api/sizing", "application/json", bytes.NewBufferString(peaUniform))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post("http://"+cfg.Server.Address+"/api/sizing", "application/json", bytes.NewBufferString(`{"authority":"EGAT"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	waitCtx, wcancel := context.WithTimeout(ctx, 30*time.Second)
	defer wcancel()
	require.NoError(t, inf.WaitForMeasurement(waitCtx, "sizing_request"))
	require.NoError(t, inf.WaitForMeasurement(waitCtx, "request_rejected"))
	require.NoError(t, inf.WaitForMeasurement(waitCtx, "reference_load"))
}
