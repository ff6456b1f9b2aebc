// Package sizer runs sizing requests on behalf of a transport. It resolves
// the request, publishes the outcome on the event bus and reports unexpected
// failures to the monitor.
package sizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/evsizer/core/events"
	"github.com/kilianp07/evsizer/core/model"
	coremon "github.com/kilianp07/evsizer/core/monitoring"
	"github.com/kilianp07/evsizer/core/reftable"
	"github.com/kilianp07/evsizer/core/sizing"
	"github.com/kilianp07/evsizer/internal/eventbus"
)

// Rejection reasons published with events.RequestRejected.
const (
	ReasonDecode   = "decode"
	ReasonInvalid  = "invalid"
	ReasonInternal = "internal"
)

// ErrNoReference is returned when no reference table has been loaded.
var ErrNoReference = errors.New("reference table not loaded")

// Resolver is the subset of sizing.Resolver used by the service.
type Resolver interface {
	Compute(req model.StationRequest, table reftable.Accessor) (model.SizingResult, error)
}

// Service binds a resolver to a loaded reference table.
type Service struct {
	resolver Resolver
	table    reftable.Accessor
	bus      *eventbus.Bus[events.Event]
}

// New creates a Service. A nil resolver uses sizing.NewResolver(nil); a nil
// bus disables event publication.
func New(resolver Resolver, table reftable.Accessor, bus *eventbus.Bus[events.Event]) *Service {
	if resolver == nil {
		resolver = sizing.NewResolver(nil)
	}
	return &Service{resolver: resolver, table: table, bus: bus}
}

// NewRequestID returns a fresh request identifier.
func NewRequestID() string { return uuid.NewString() }

// Size resolves req and publishes the outcome. Invalid requests are returned
// wrapped in sizing.ErrInvalidRequest.
func (s *Service) Size(id, transport string, req model.StationRequest) (model.SizingResult, error) {
	if s.table == nil {
		s.Reject(id, transport, ReasonInternal, ErrNoReference)
		return model.SizingResult{}, ErrNoReference
	}
	start := time.Now()
	res, err := s.resolver.Compute(req, s.table)
	if err != nil {
		reason := ReasonInternal
		if errors.Is(err, sizing.ErrInvalidRequest) {
			reason = ReasonInvalid
		}
		s.Reject(id, transport, reason, err)
		return model.SizingResult{}, err
	}
	s.publish(events.FromResult(id, transport, res, time.Since(start)))
	return res, nil
}

// Reject publishes a rejection. Internal failures are also sent to the
// monitor.
func (s *Service) Reject(id, transport, reason string, err error) {
	if reason == ReasonInternal {
		coremon.CaptureException(fmt.Errorf("sizing request %s: %w", id, err),
			map[string]string{"transport": transport, "request_id": id})
	}
	s.publish(events.RequestRejected{
		RequestID: id,
		Transport: transport,
		Reason:    reason,
		Err:       err,
		Time:      time.Now(),
	})
}

func (s *Service) publish(ev events.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
