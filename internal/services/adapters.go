package services

import (
	"context"
	"io"
	"sync/atomic"
)

// HTTPServer defines the interface expected by HTTPServerService.
type HTTPServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
}

// HTTPServerService adapts an HTTP server to the ManagedService interface.
type HTTPServerService struct {
	server HTTPServer
	name   string
	deps   []string
}

// NewHTTPServerService creates a new HTTP server service adapter.
func NewHTTPServerService(name string, server HTTPServer, deps ...string) *HTTPServerService {
	return &HTTPServerService{server: server, name: name, deps: deps}
}

func (h *HTTPServerService) Name() string                    { return h.name }
func (h *HTTPServerService) Start(ctx context.Context) error { return h.server.Start(ctx) }
func (h *HTTPServerService) Stop(ctx context.Context) error  { return h.server.Stop(ctx) }
func (h *HTTPServerService) Dependencies() []string          { return h.deps }

func (h *HTTPServerService) Health() HealthStatus {
	if h.server.IsRunning() {
		return Healthy()
	}
	return Unhealthy("server not running")
}

// Scheduler defines the interface expected by SchedulerService.
type Scheduler interface {
	Start() error
	Stop() error
}

// SchedulerService adapts a periodic job runner to the ManagedService interface.
type SchedulerService struct {
	scheduler Scheduler
	name      string
	deps      []string
	running   atomic.Bool
}

// NewSchedulerService creates a new scheduler service adapter.
func NewSchedulerService(name string, scheduler Scheduler, deps ...string) *SchedulerService {
	return &SchedulerService{scheduler: scheduler, name: name, deps: deps}
}

func (s *SchedulerService) Name() string           { return s.name }
func (s *SchedulerService) Dependencies() []string { return s.deps }

func (s *SchedulerService) Start(context.Context) error {
	if err := s.scheduler.Start(); err != nil {
		return err
	}
	s.running.Store(true)
	return nil
}

func (s *SchedulerService) Stop(context.Context) error {
	s.running.Store(false)
	return s.scheduler.Stop()
}

func (s *SchedulerService) Health() HealthStatus {
	if s.running.Load() {
		return Healthy()
	}
	return Unhealthy("scheduler not running")
}

// ResourceService holds an already-open resource, such as a database or a
// broker connection, and closes it on Stop.
type ResourceService struct {
	name   string
	res    io.Closer
	check  func() error
	closed atomic.Bool
}

// NewResourceService wraps res. check, when non-nil, reports the resource's
// health.
func NewResourceService(name string, res io.Closer, check func() error) *ResourceService {
	return &ResourceService{name: name, res: res, check: check}
}

func (r *ResourceService) Name() string                { return r.name }
func (r *ResourceService) Start(context.Context) error { return nil }
func (r *ResourceService) Dependencies() []string      { return nil }

func (r *ResourceService) Stop(context.Context) error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.res.Close()
}

func (r *ResourceService) Health() HealthStatus {
	if r.closed.Load() {
		return Unhealthy("closed")
	}
	if r.check != nil {
		if err := r.check(); err != nil {
			return Unhealthy(err.Error())
		}
	}
	return Healthy()
}
