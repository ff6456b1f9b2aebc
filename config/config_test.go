package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `reference:
  source: "testdata/reference.xlsx"
  sheet: "Sheet1"
  auth:
    client_id: "id"
    client_secret: "secret"
    auth_url: "https://auth.example.com/token"
server:
  address: ":9000"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  client_id: "cli"
  username: "user"
  password: "pass"
  use_tls: false
metrics:
  sinks:
    - type: "nop"
logging:
  level: "debug"
sentry:
  dsn: "https://key@example.com/1"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"reference.source", cfg.Reference.Source, "testdata/reference.xlsx"},
		{"reference.sheet", cfg.Reference.Sheet, "Sheet1"},
		{"reference.timeout_seconds", cfg.Reference.TimeoutSeconds, 30},
		{"reference.auth.client_id", cfg.Reference.Auth.ClientID, "id"},
		{"server.address", cfg.Server.Address, ":9000"},
		{"server.read_timeout_seconds", cfg.Server.ReadTimeoutSeconds, 10},
		{"mqtt.enabled", cfg.MQTT.Enabled, true},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.ClientID, "cli"},
		{"request_topic", cfg.MQTT.RequestTopic, "evsizer/request/+"},
		{"response_prefix", cfg.MQTT.ResponsePrefix, "evsizer/response"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"prometheus_port", cfg.Metrics.PrometheusPort, ":9100"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"sentry.dsn", cfg.Sentry.DSN, "https://key@example.com/1"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.json", `{"server": {"address": ":8080"}}`)
	t.Setenv("EVSIZER_SERVER__ADDRESS", ":7070")
	t.Setenv("EVSIZER_REFERENCE__ROW_OFFSET", "2")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Fatalf("env override not applied: %s", cfg.Server.Address)
	}
	if cfg.Reference.RowOffset != 2 {
		t.Fatalf("expected row_offset 2 got %d", cfg.Reference.RowOffset)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default level info got %s", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"bad level":   "logging:\n  level: loud\n",
		"bad offset":  "reference:\n  row_offset: -1\n",
		"sink type":   "metrics:\n  sinks:\n    - conf: {}\n",
		"mqtt broker": "mqtt:\n  enabled: true\n",
		"sample rate": "sentry:\n  traces_sample_rate: 2\n",
		"log backups": "logging:\n  file: evsizer.log\n  max_backups: -1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, "config.yaml", data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := Load(writeConfig(t, "config.toml", "")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
