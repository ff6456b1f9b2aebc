// Package util holds helpers for the end-to-end tests: free ports, readiness
// polling of a running evsizer service, and disposable Mosquitto and InfluxDB
// containers.
package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	ServerTimeout         = 5 * time.Second
	MosquittoReadyTimeout = 5 * time.Second
	MetricTimeout         = 5 * time.Second

	pollInterval = 50 * time.Millisecond
)

// FreeAddr returns a loopback address with a port that was free when probed.
func FreeAddr() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	addr := l.Addr().String()
	if err := l.Close(); err != nil {
		return "", err
	}
	return addr, nil
}

// poll calls check every interval until it reports done, returns an error,
// or ctx ends. what names the awaited condition in the timeout error.
func poll(ctx context.Context, interval time.Duration, what string, check func() (bool, error)) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		done, err := check()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", what, ctx.Err())
		case <-t.C:
		}
	}
}

// get fetches url and returns the status code and body. Transport errors are
// reported as status 0 so callers keep polling.
func get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, nil
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s: %w", url, err)
	}
	return resp.StatusCode, body, nil
}

// WaitForHTTP blocks until url answers 200.
func WaitForHTTP(ctx context.Context, url string) error {
	return poll(ctx, pollInterval, "server not ready", func() (bool, error) {
		code, _, err := get(ctx, url)
		return code == http.StatusOK, err
	})
}

// WaitForMetric blocks until the exposition at metricsURL contains substr.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	return poll(ctx, pollInterval, fmt.Sprintf("metric %q not found", substr), func() (bool, error) {
		code, body, err := get(ctx, metricsURL)
		return code == http.StatusOK && bytes.Contains(body, []byte(substr)), err
	})
}

const mosquittoConf = `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
`

// StartMosquitto runs an anonymous eclipse-mosquitto 2 broker and waits until
// it accepts MQTT connections. It returns the tcp:// broker URL and a cleanup
// function.
func StartMosquitto(ctx context.Context) (string, func(), error) {
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "eclipse-mosquitto:2.0",
			ExposedPorts: []string{"1883/tcp"},
			WaitingFor:   wait.ForListeningPort("1883/tcp"),
			Files: []tc.ContainerFile{{
				Reader:            strings.NewReader(mosquittoConf),
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0o644,
			}},
		},
		Started: true,
	})
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = cont.Terminate(context.Background()) }

	endpoint, err := cont.PortEndpoint(ctx, "1883/tcp", "tcp")
	if err != nil {
		cleanup()
		return "", nil, err
	}
	readyCtx, cancel := context.WithTimeout(ctx, MosquittoReadyTimeout)
	defer cancel()
	opts := paho.NewClientOptions().AddBroker(endpoint).SetClientID("evsizer-ready").SetConnectTimeout(time.Second)
	err = poll(readyCtx, pollInterval, "mosquitto not ready", func() (bool, error) {
		cli := paho.NewClient(opts)
		if tok := cli.Connect(); !tok.WaitTimeout(time.Second) || tok.Error() != nil {
			return false, nil
		}
		cli.Disconnect(100)
		return true, nil
	})
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return endpoint, cleanup, nil
}
