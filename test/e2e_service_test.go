package test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evsizer/app"
	"github.com/kilianp07/evsizer/config"
	"github.com/kilianp07/evsizer/core/factory"
	"github.com/kilianp07/evsizer/core/model"
	"github.com/kilianp07/evsizer/core/sizing/sizingtest"
	"github.com/kilianp07/evsizer/infra/mqtt"
	"github.com/kilianp07/evsizer/test/util"
)

const peaUniform = `{"authority":"PEA","mode":"uniform","chargers":["80 kW"],"count":3,"trWiringMethod":"conduit_air","mdbWiringMethod":"conduit_air"}`

func serviceConfig(t *testing.T) *config.Config {
	t.Helper()
	book := filepath.Join(t.TempDir(), "reference.xlsx")
	require.NoError(t, sizingtest.WriteWorkbook(book))
	api, err := util.FreeAddr()
	require.NoError(t, err)
	prom, err := util.FreeAddr()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Reference.Source = book
	cfg.Server.Address = api
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "prometheus"}}
	cfg.Metrics.PrometheusPort = prom
	return cfg
}

// startService runs the service until the test ends.
func startService(t *testing.T, cfg *config.Config) {
	t.Helper()
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	ctx, cancel := context.WithCancel(context.Background())
	svc, err := app.New(ctx, cfg)
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("service did not stop")
		}
		_ = svc.Close()
	})

	waitCtx, wcancel := context.WithTimeout(ctx, util.ServerTimeout)
	defer wcancel()
	require.NoError(t, util.WaitForHTTP(waitCtx, "http://"+cfg.Server.Address+"/healthz"))
}

func TestHTTPSizingEndToEnd(t *testing.T) {
	cfg := serviceConfig(t)
	startService(t, cfg)

	resp, err := http.Post("http://"+cfg.Server.Address+"/api/sizing", "application/json", bytes.NewBufferString(peaUniform))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res model.SizingResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "250", res.TransformerCapacityKVA)
	assert.Equal(t, "630AF", res.MDBMainBreakerAF)

	ctx, cancel := context.WithTimeout(context.Background(), util.MetricTimeout)
	defer cancel()
	metricsURL := "http://" + cfg.Metrics.PrometheusPort + "/metrics"
	require.NoError(t, util.WaitForMetric(ctx, metricsURL, `sizing_requests_total{authority="PEA"`))
	require.NoError(t, util.WaitForMetric(ctx, metricsURL, "sizing_reference_rows"))
}

func TestMQTTSizingEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()
	broker, cleanup, err := util.StartMosquitto(ctx)
	if err != nil {
		t.Skipf("mosquitto unavailable: %v", err)
	}
	defer cleanup()

	cfg := serviceConfig(t)
	cfg.MQTT = mqtt.Config{Enabled: true, Broker: broker, ClientID: "evsizer-e2e"}
	startService(t, cfg)

	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("e2e-requester")
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	require.True(t, tok.WaitTimeout(5*time.Second))
	require.NoError(t, tok.Error())
	defer cli.Disconnect(100)

	got := make(chan mqtt.Response, 1)
	tok = cli.Subscribe("evsizer/response/station-42", 1, func(_ paho.Client, m paho.Message) {
		var r mqtt.Response
		if err := json.Unmarshal(m.Payload(), &r); err == nil {
			got <- r
		}
	})
	require.True(t, tok.WaitTimeout(5*time.Second))
	require.NoError(t, tok.Error())

	tok = cli.Publish("evsizer/request/station-42", 1, false, []byte(peaUniform))
	require.True(t, tok.WaitTimeout(5*time.Second))
	require.NoError(t, tok.Error())

	select {
	case r := <-got:
		assert.Equal(t, "station-42", r.RequestID)
		assert.Empty(t, r.Error)
		require.NotNil(t, r.Result)
		assert.Equal(t, []string{"160AT/250AF", "160AT/250AF", "160AT/250AF"}, r.Result.MDBSubBreakers)
	case <-time.After(10 * time.Second):
		t.Fatal("no sizing response received")
	}
}
