package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/policygen/internal/config"
	"git.home.luguber.info/inful/policygen/internal/metrics"
	"git.home.luguber.info/inful/policygen/internal/server/handlers"
	"git.home.luguber.info/inful/policygen/internal/service"
)

// Options configures the listeners. Service and Config are required.
type Options struct {
	Config  *config.Config
	Service *service.PolicyService
	Logger  *slog.Logger

	Recorder metrics.Recorder
	// MetricsHandler serves the admin metrics path; nil disables it.
	MetricsHandler http.Handler
	// Health contributes component states to /healthz.
	Health handlers.HealthReporter

	StartTime time.Time
}
