package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/logfields"
)

// ServiceStatus represents the current state of a service.
type ServiceStatus string

const (
	StatusNotStarted ServiceStatus = "not_started"
	StatusStarting   ServiceStatus = "starting"
	StatusRunning    ServiceStatus = "running"
	StatusStopping   ServiceStatus = "stopping"
	StatusStopped    ServiceStatus = "stopped"
	StatusFailed     ServiceStatus = "failed"
)

// ServiceInfo contains metadata about a managed service.
type ServiceInfo struct {
	Name         string        `json:"name"`
	Status       ServiceStatus `json:"status"`
	Health       HealthStatus  `json:"health"`
	Dependencies []string      `json:"dependencies"`
	StartedAt    *time.Time    `json:"started_at,omitempty"`
	StoppedAt    *time.Time    `json:"stopped_at,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
}

// Orchestrator starts services in dependency order and stops them in
// reverse.
type Orchestrator struct {
	services   map[string]ManagedService
	status     map[string]ServiceStatus
	startedAt  map[string]time.Time
	stoppedAt  map[string]time.Time
	lastErrors map[string]error
	mu         sync.RWMutex
	logger     *slog.Logger

	startTimeout time.Duration
	stopTimeout  time.Duration
}

// NewOrchestrator creates an empty orchestrator.
func NewOrchestrator(logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		services:     make(map[string]ManagedService),
		status:       make(map[string]ServiceStatus),
		startedAt:    make(map[string]time.Time),
		stoppedAt:    make(map[string]time.Time),
		lastErrors:   make(map[string]error),
		logger:       logger,
		startTimeout: 30 * time.Second,
		stopTimeout:  10 * time.Second,
	}
}

// WithTimeouts configures start and stop timeouts.
func (o *Orchestrator) WithTimeouts(start, stop time.Duration) *Orchestrator {
	o.startTimeout = start
	o.stopTimeout = stop
	return o
}

// Register adds a service. Names must be unique and non-empty.
func (o *Orchestrator) Register(service ManagedService) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	name := service.Name()
	if name == "" {
		return errors.ValidationError("service name cannot be empty").Build()
	}
	if _, exists := o.services[name]; exists {
		return errors.ValidationError(fmt.Sprintf("service %s already registered", name)).Build()
	}

	o.services[name] = service
	o.status[name] = StatusNotStarted
	o.logger.Debug("Service registered", "service", name, "dependencies", service.Dependencies())
	return nil
}

// StartAll starts all services in dependency order. On failure the services
// already started are stopped again.
func (o *Orchestrator) StartAll(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, err := o.startOrder()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to calculate service start order").Build()
	}

	o.logger.Info("Starting services", "count", len(order), "order", order)
	for _, name := range order {
		if err := o.startService(ctx, name); err != nil {
			o.stopRunning(ctx, order)
			return err
		}
	}
	return nil
}

// StopAll stops all running services in reverse dependency order.
func (o *Orchestrator) StopAll(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, err := o.startOrder()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to calculate service stop order").Build()
	}

	var lastError error
	for _, name := range slices.Backward(order) {
		if err := o.stopService(ctx, name); err != nil {
			lastError = err
			o.logger.Error("Error stopping service", "service", name, logfields.Error(err))
		}
	}
	if lastError != nil {
		return errors.WrapError(lastError, errors.CategoryInternal, "some services failed to stop gracefully").Build()
	}

	o.logger.Info("All services stopped")
	return nil
}

// Info returns information about a specific service.
func (o *Orchestrator) Info(name string) (ServiceInfo, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.infoLocked(name)
}

func (o *Orchestrator) infoLocked(name string) (ServiceInfo, bool) {
	service, exists := o.services[name]
	if !exists {
		return ServiceInfo{}, false
	}
	info := ServiceInfo{
		Name:         name,
		Status:       o.status[name],
		Dependencies: service.Dependencies(),
		Health:       service.Health(),
	}
	if t, ok := o.startedAt[name]; ok {
		info.StartedAt = &t
	}
	if t, ok := o.stoppedAt[name]; ok {
		info.StoppedAt = &t
	}
	if err := o.lastErrors[name]; err != nil {
		info.LastError = err.Error()
	}
	return info, true
}

// AllInfo returns information about all services sorted by name.
func (o *Orchestrator) AllInfo() []ServiceInfo {
	o.mu.RLock()
	defer o.mu.RUnlock()

	infos := make([]ServiceInfo, 0, len(o.services))
	for _, name := range o.sortedNames() {
		if info, ok := o.infoLocked(name); ok {
			infos = append(infos, info)
		}
	}
	return infos
}

// ComponentHealth maps every service name to its rendered health.
func (o *Orchestrator) ComponentHealth() map[string]string {
	out := make(map[string]string)
	for _, info := range o.AllInfo() {
		out[info.Name] = info.Health.String()
	}
	return out
}

func (o *Orchestrator) sortedNames() []string {
	names := make([]string, 0, len(o.services))
	for name := range o.services {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// startOrder is a topological sort over dependencies with names visited in
// sorted order so that the result is stable.
func (o *Orchestrator) startOrder() ([]string, error) {
	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if visiting[name] {
			return fmt.Errorf("circular dependency detected involving service: %s", name)
		}
		if visited[name] {
			return nil
		}
		service, exists := o.services[name]
		if !exists {
			return fmt.Errorf("service not found: %s", name)
		}

		visiting[name] = true
		for _, dep := range service.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		visiting[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range o.sortedNames() {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (o *Orchestrator) startService(ctx context.Context, name string) error {
	service := o.services[name]
	o.status[name] = StatusStarting

	timeoutCtx, cancel := context.WithTimeout(ctx, o.startTimeout)
	defer cancel()

	start := time.Now()
	if err := service.Start(timeoutCtx); err != nil {
		o.status[name] = StatusFailed
		o.lastErrors[name] = err
		return errors.WrapError(err, errors.CategoryRuntime, fmt.Sprintf("failed to start service %s", name)).Build()
	}

	o.status[name] = StatusRunning
	o.startedAt[name] = start
	o.lastErrors[name] = nil
	o.logger.Info("Service started", "service", name, logfields.Duration(time.Since(start)))
	return nil
}

func (o *Orchestrator) stopService(ctx context.Context, name string) error {
	if o.status[name] != StatusRunning {
		return nil
	}
	service := o.services[name]
	o.status[name] = StatusStopping

	timeoutCtx, cancel := context.WithTimeout(ctx, o.stopTimeout)
	defer cancel()

	stop := time.Now()
	if err := service.Stop(timeoutCtx); err != nil {
		o.status[name] = StatusFailed
		o.lastErrors[name] = err
		return err
	}

	o.status[name] = StatusStopped
	o.stoppedAt[name] = stop
	o.logger.Info("Service stopped", "service", name, logfields.Duration(time.Since(stop)))
	return nil
}

// stopRunning stops running services in reverse start order.
func (o *Orchestrator) stopRunning(ctx context.Context, order []string) {
	for _, name := range slices.Backward(order) {
		if err := o.stopService(ctx, name); err != nil {
			o.logger.Error("Error stopping service during cleanup", "service", name, logfields.Error(err))
		}
	}
}
