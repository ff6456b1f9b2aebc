package util

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Influx holds the coordinates of a disposable InfluxDB 2 instance.
type Influx struct {
	URL    string
	Org    string
	Bucket string
	Token  string
}

// StartInflux launches InfluxDB 2.7 in setup mode with a fixed organisation,
// bucket and admin token. It returns the instance and a cleanup function.
func StartInflux(ctx context.Context) (Influx, func(), error) {
	inf := Influx{Org: "evsizer", Bucket: "sizing", Token: "evsizer-e2e-token"}
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "admin",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "evsizer-admin",
			"DOCKER_INFLUXDB_INIT_ORG":         inf.Org,
			"DOCKER_INFLUXDB_INIT_BUCKET":      inf.Bucket,
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": inf.Token,
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		return Influx{}, nil, err
	}
	cleanup := func() { _ = cont.Terminate(context.Background()) }

	host, err := cont.Host(ctx)
	if err != nil {
		cleanup()
		return Influx{}, nil, err
	}
	port, err := cont.MappedPort(ctx, "8086")
	if err != nil {
		cleanup()
		return Influx{}, nil, err
	}
	inf.URL = fmt.Sprintf("http://%s:%s", host, port.Port())
	return inf, cleanup, nil
}

// WaitForMeasurement polls the bucket until at least one point of measurement
// was written in the last minute or the context is done.
func (i Influx) WaitForMeasurement(ctx context.Context, measurement string) error {
	c := influxdb2.NewClient(i.URL, i.Token)
	defer c.Close()
	flux := fmt.Sprintf(`from(bucket:%q) |> range(start:-1m) |> filter(fn: (r) => r._measurement == %q)`, i.Bucket, measurement)
	return poll(ctx, pollInterval*4, fmt.Sprintf("measurement %q not found", measurement), func() (bool, error) {
		res, err := c.QueryAPI(i.Org).Query(ctx, flux)
		if err != nil {
			return false, nil
		}
		defer res.Close()
		return res.Next(), nil
	})
}
