// Package services manages the lifecycle of the long-running components of
// the server: listeners, the history pruner and external connections.
package services

import (
	"context"
	"time"
)

// ManagedService defines the interface for services with lifecycle management.
type ManagedService interface {
	// Name returns the service name for logging and identification.
	Name() string

	// Start initializes and starts the service.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the service.
	Stop(ctx context.Context) error

	// Health returns the current health status of the service.
	Health() HealthStatus

	// Dependencies returns the names of services this service depends on.
	Dependencies() []string
}

// HealthStatus represents the health of a managed service.
type HealthStatus struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	CheckAt time.Time `json:"check_at"`
}

const (
	healthy   = "healthy"
	unhealthy = "unhealthy"
)

// Healthy returns a healthy status stamped now.
func Healthy() HealthStatus { return HealthStatus{Status: healthy, CheckAt: time.Now()} }

// Unhealthy returns an unhealthy status with message.
func Unhealthy(message string) HealthStatus {
	return HealthStatus{Status: unhealthy, Message: message, CheckAt: time.Now()}
}

// IsHealthy reports whether the status is healthy.
func (h HealthStatus) IsHealthy() bool { return h.Status == healthy }

// String renders the status with its message, e.g. "unhealthy: not running".
func (h HealthStatus) String() string {
	if h.Message == "" {
		return h.Status
	}
	return h.Status + ": " + h.Message
}
