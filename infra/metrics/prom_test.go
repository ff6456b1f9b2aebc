package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/evsizer/core/metrics"
	"github.com/kilianp07/evsizer/core/model"
)

func TestPromSink_RecordSizing(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	rec := coremetrics.SizingRecord{
		Transport:        "http",
		Authority:        model.AuthorityPEA,
		Mode:             model.ModeUniform,
		AggregatePowerKW: 240,
		Duration:         2 * time.Millisecond,
	}
	if err := sink.RecordSizing(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}
	rec.Undeterminable = true
	rec.AggregatePowerKW = 2400
	if err := sink.RecordSizing(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP sizing_requests_total Total number of resolved sizing requests
# TYPE sizing_requests_total counter
sizing_requests_total{authority="PEA",mode="uniform",transport="http"} 2
`
	if err := testutil.CollectAndCompare(sink.requests, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if v := testutil.ToFloat64(sink.undeterminable.WithLabelValues("PEA")); v != 1 {
		t.Errorf("expected 1 undeterminable got %v", v)
	}
	if c := testutil.CollectAndCount(sink.duration); c == 0 {
		t.Errorf("duration not recorded")
	}
}

func TestPromSink_RejectedAndReference(t *testing.T) {
	sink, err := NewPromSinkWithRegistry(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	_ = sink.RecordRequestError(coremetrics.RequestErrorEvent{Transport: "mqtt", Reason: "decode"})
	_ = sink.RecordReferenceLoad(coremetrics.ReferenceLoadEvent{Rows: 88})

	if v := testutil.ToFloat64(sink.rejected.WithLabelValues("mqtt", "decode")); v != 1 {
		t.Errorf("expected 1 rejected got %v", v)
	}
	expected := `
# HELP sizing_reference_rows Number of rows in the loaded reference table
# TYPE sizing_reference_rows gauge
sizing_reference_rows 88
`
	if err := testutil.CollectAndCompare(sink.referenceRows, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected reference metric: %v", err)
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first sink: %v", err)
	}
	second, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second sink: %v", err)
	}
	_ = first.RecordRequestError(coremetrics.RequestErrorEvent{Transport: "http", Reason: "invalid"})
	if v := testutil.ToFloat64(second.rejected.WithLabelValues("http", "invalid")); v != 1 {
		t.Fatalf("collectors were not shared, got %v", v)
	}
}
