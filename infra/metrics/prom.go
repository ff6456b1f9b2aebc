package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/evsizer/core/metrics"
)

// PromSink records sizing activity in Prometheus metrics.
type PromSink struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	aggregate      *prometheus.HistogramVec
	undeterminable *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	referenceRows  prometheus.Gauge
}

// NewPromSink registers sizing metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	s, err := NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"authority", "mode", "transport"}
	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sizing_requests_total",
		Help: "Total number of resolved sizing requests",
	}, labels))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sizing_duration_seconds",
		Help:    "Time spent resolving a sizing request",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
	}, labels))
	if err != nil {
		return nil, err
	}
	aggregate, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sizing_aggregate_power_kw",
		Help:    "Aggregate charger power of resolved stations",
		Buckets: []float64{50, 100, 200, 400, 800, 1200, 1600, 2000},
	}, []string{"authority"}))
	if err != nil {
		return nil, err
	}
	undeterminable, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sizing_undeterminable_total",
		Help: "Requests for which no transformer capacity could be determined",
	}, []string{"authority"}))
	if err != nil {
		return nil, err
	}
	rejected, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sizing_rejected_requests_total",
		Help: "Requests rejected before resolution",
	}, []string{"transport", "reason"}))
	if err != nil {
		return nil, err
	}
	rows, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sizing_reference_rows",
		Help: "Number of rows in the loaded reference table",
	}))
	if err != nil {
		return nil, err
	}
	return &PromSink{
		requests:       requests,
		duration:       duration,
		aggregate:      aggregate,
		undeterminable: undeterminable,
		rejected:       rejected,
		referenceRows:  rows,
	}, nil
}

// register returns the already registered collector when c is a duplicate.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// RecordSizing updates the request counters and histograms.
func (s *PromSink) RecordSizing(r coremetrics.SizingRecord) error {
	a, m := string(r.Authority), string(r.Mode)
	s.requests.WithLabelValues(a, m, r.Transport).Inc()
	s.duration.WithLabelValues(a, m, r.Transport).Observe(r.Duration.Seconds())
	s.aggregate.WithLabelValues(a).Observe(r.AggregatePowerKW)
	if r.Undeterminable {
		s.undeterminable.WithLabelValues(a).Inc()
	}
	return nil
}

// RecordRequestError counts rejected requests.
func (s *PromSink) RecordRequestError(ev coremetrics.RequestErrorEvent) error {
	s.rejected.WithLabelValues(ev.Transport, ev.Reason).Inc()
	return nil
}

// RecordReferenceLoad sets the reference row gauge.
func (s *PromSink) RecordReferenceLoad(ev coremetrics.ReferenceLoadEvent) error {
	s.referenceRows.Set(float64(ev.Rows))
	return nil
}
