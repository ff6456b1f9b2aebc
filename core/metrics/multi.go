package metrics

import "errors"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSizing forwards the record to all sinks. Every sink is attempted and
// the errors are joined.
func (m *MultiSink) RecordSizing(rec SizingRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordSizing(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordRequestError forwards to sinks implementing RequestErrorRecorder.
func (m *MultiSink) RecordRequestError(ev RequestErrorEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(RequestErrorRecorder); ok {
			if err := rec.RecordRequestError(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordReferenceLoad forwards to sinks implementing ReferenceLoadRecorder.
func (m *MultiSink) RecordReferenceLoad(ev ReferenceLoadEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(ReferenceLoadRecorder); ok {
			if err := rec.RecordReferenceLoad(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
