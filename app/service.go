package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	apisizing "github.com/kilianp07/evsizer/api/sizing"
	"github.com/kilianp07/evsizer/config"
	"github.com/kilianp07/evsizer/core/events"
	coremetrics "github.com/kilianp07/evsizer/core/metrics"
	"github.com/kilianp07/evsizer/core/sizing"
	"github.com/kilianp07/evsizer/infra/logger"
	"github.com/kilianp07/evsizer/infra/metrics"
	"github.com/kilianp07/evsizer/infra/mqtt"
	"github.com/kilianp07/evsizer/infra/workbook"
	"github.com/kilianp07/evsizer/internal/eventbus"
	"github.com/kilianp07/evsizer/internal/sizer"
)

// Service wires the reference table, the resolver and the transports.
type Service struct {
	Sizer *sizer.Service

	cfg       *config.Config
	info      workbook.Info
	bus       *eventbus.Bus[events.Event]
	sink      coremetrics.MetricsSink
	client    *mqtt.PahoClient
	responder *mqtt.Responder
	ready     atomic.Bool
	log       logger.Logger
}

// New loads the reference workbook and builds the service from the configuration.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	table, info, err := workbook.Load(ctx, cfg.Reference)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	bus := eventbus.New[events.Event](eventbus.WithBuffer(64))
	svc := &Service{
		Sizer: sizer.New(sizing.NewResolver(logger.New("sizing")), table, bus),
		cfg:   cfg,
		info:  info,
		bus:   bus,
		sink:  sink,
		log:   logg,
	}
	if cfg.MQTT.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.client = client
		svc.responder = mqtt.NewResponder(client, svc.Sizer, cfg.MQTT)
	}
	return svc, nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	return apisizing.Routes(s.Sizer, s.ready.Load)
}

// Run starts the transports and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	collectorDone := metrics.StartEventCollector(ctx, s.bus, s.sink)
	s.bus.Publish(events.ReferenceLoaded{
		Source:   s.info.Source,
		Rows:     s.info.Rows,
		Duration: s.info.Duration,
		Time:     time.Now(),
	})
	if s.cfg.Metrics.PrometheusEnabled() {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.responder != nil {
		if err := s.responder.Start(); err != nil {
			return fmt.Errorf("mqtt responder: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.Server.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout(),
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("serving API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.ready.Store(true)

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}
	s.ready.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("http shutdown: %v", err)
	}
	s.bus.Close()
	<-collectorDone
	return runErr
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.client != nil {
		s.client.Disconnect()
	}
	return nil
}
