package events

import (
	"time"

	"github.com/kilianp07/evsizer/core/model"
)

// Event is implemented by every bus event.
type Event interface {
	event()
}

// Transports that produce events.
const (
	TransportHTTP = "http"
	TransportMQTT = "mqtt"
	TransportCLI  = "cli"
)

// SizingCompleted is published after a successful resolution.
type SizingCompleted struct {
	RequestID        string
	Transport        string
	Authority        model.Authority
	Mode             model.Mode
	Positions        int
	AggregatePowerKW float64
	TransformerKVA   string
	// Undeterminable is set when no transformer capacity could be determined.
	Undeterminable bool
	Duration       time.Duration
	Time           time.Time
}

// RequestRejected is published when a request fails before resolution.
type RequestRejected struct {
	RequestID string
	Transport string
	// Reason is a short machine friendly cause such as "decode" or "invalid".
	Reason string
	Err    error
	Time   time.Time
}

// ReferenceLoaded is published when the reference table has been loaded.
type ReferenceLoaded struct {
	Source   string
	Rows     int
	Duration time.Duration
	Time     time.Time
}

func (SizingCompleted) event() {}
func (RequestRejected) event() {}
func (ReferenceLoaded) event() {}

// FromResult builds a SizingCompleted event from a result.
func FromResult(id, transport string, res model.SizingResult, d time.Duration) SizingCompleted {
	return SizingCompleted{
		RequestID:        id,
		Transport:        transport,
		Authority:        res.Authority,
		Mode:             res.Mode,
		Positions:        len(res.ChargerLines),
		AggregatePowerKW: res.AggregatePowerKW,
		TransformerKVA:   res.TransformerCapacityKVA,
		Undeterminable:   res.TransformerCapacityKVA == model.Placeholder,
		Duration:         d,
		Time:             time.Now(),
	}
}
