package metrics

import (
	"time"

	"github.com/kilianp07/evsizer/core/model"
)

// SizingRecord describes one resolved sizing request.
type SizingRecord struct {
	RequestID        string
	Transport        string
	Authority        model.Authority
	Mode             model.Mode
	Positions        int
	AggregatePowerKW float64
	TransformerKVA   string
	Undeterminable   bool
	Duration         time.Duration
	Time             time.Time
}

// MetricsSink records sizing requests for observability purposes.
type MetricsSink interface {
	RecordSizing(rec SizingRecord) error
}

// RequestErrorEvent captures a request rejected before resolution.
type RequestErrorEvent struct {
	RequestID string
	Transport string
	Reason    string
	Error     string
	Time      time.Time
}

// RequestErrorRecorder records rejected requests.
type RequestErrorRecorder interface {
	RecordRequestError(ev RequestErrorEvent) error
}

// ReferenceLoadEvent captures a reference workbook load.
type ReferenceLoadEvent struct {
	Source   string
	Rows     int
	Duration time.Duration
	Time     time.Time
}

// ReferenceLoadRecorder records reference table loads.
type ReferenceLoadRecorder interface {
	RecordReferenceLoad(ev ReferenceLoadEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSizing(SizingRecord) error              { return nil }
func (NopSink) RecordRequestError(RequestErrorEvent) error   { return nil }
func (NopSink) RecordReferenceLoad(ReferenceLoadEvent) error { return nil }
