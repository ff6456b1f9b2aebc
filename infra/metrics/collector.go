package metrics

import (
	"context"

	"github.com/kilianp07/evsizer/core/events"
	coremetrics "github.com/kilianp07/evsizer/core/metrics"
	"github.com/kilianp07/evsizer/infra/logger"
	"github.com/kilianp07/evsizer/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed. The returned
// channel is closed once the collector goroutine has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil {
					log.Warnf("record %T: %v", ev, err)
				}
			}
		}
	}()
	return done
}

func record(sink coremetrics.MetricsSink, ev events.Event) error {
	switch e := ev.(type) {
	case events.SizingCompleted:
		return sink.RecordSizing(coremetrics.SizingRecord{
			RequestID:        e.RequestID,
			Transport:        e.Transport,
			Authority:        e.Authority,
			Mode:             e.Mode,
			Positions:        e.Positions,
			AggregatePowerKW: e.AggregatePowerKW,
			TransformerKVA:   e.TransformerKVA,
			Undeterminable:   e.Undeterminable,
			Duration:         e.Duration,
			Time:             e.Time,
		})
	case events.RequestRejected:
		r, ok := sink.(coremetrics.RequestErrorRecorder)
		if !ok {
			return nil
		}
		errStr := ""
		if e.Err != nil {
			errStr = e.Err.Error()
		}
		return r.RecordRequestError(coremetrics.RequestErrorEvent{
			RequestID: e.RequestID,
			Transport: e.Transport,
			Reason:    e.Reason,
			Error:     errStr,
			Time:      e.Time,
		})
	case events.ReferenceLoaded:
		r, ok := sink.(coremetrics.ReferenceLoadRecorder)
		if !ok {
			return nil
		}
		return r.RecordReferenceLoad(coremetrics.ReferenceLoadEvent{
			Source:   e.Source,
			Rows:     e.Rows,
			Duration: e.Duration,
			Time:     e.Time,
		})
	}
	return nil
}
