package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"git.home.luguber.info/inful/policygen/internal/eventstore"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/server/responses"
	"git.home.luguber.info/inful/policygen/internal/version"
)

// HealthReporter reports the state of background components by name.
type HealthReporter interface {
	ComponentHealth() map[string]string
}

// MonitoringHandlers serves health information.
type MonitoringHandlers struct {
	startTime    time.Time
	reporter     HealthReporter
	errorAdapter *errors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates monitoring handlers. reporter may be nil.
func NewMonitoringHandlers(startTime time.Time, reporter HealthReporter, adapter *errors.HTTPErrorAdapter) *MonitoringHandlers {
	if adapter == nil {
		adapter = errors.NewHTTPErrorAdapter(slog.Default())
	}
	return &MonitoringHandlers{startTime: startTime, reporter: reporter, errorAdapter: adapter}
}

// HandleHealthCheck reports status, version and uptime. Status is degraded
// when any component is not healthy.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Commit:    version.GitCommit,
		Uptime:    time.Since(h.startTime).Seconds(),
	}
	if h.reporter != nil {
		health.Components = h.reporter.ComponentHealth()
		for _, st := range health.Components {
			if st != "healthy" {
				health.Status = "degraded"
			}
		}
	}

	if err := writeJSONPretty(w, r, http.StatusOK, health); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}

// HistorySource lists recent generations.
type HistorySource interface {
	History(ctx context.Context, limit int) ([]eventstore.GenerationRecord, error)
}

// HistoryHandlers serves the generation audit log.
type HistoryHandlers struct {
	source       HistorySource
	errorAdapter *errors.HTTPErrorAdapter
}

// NewHistoryHandlers creates history handlers backed by source.
func NewHistoryHandlers(source HistorySource, adapter *errors.HTTPErrorAdapter) *HistoryHandlers {
	if adapter == nil {
		adapter = errors.NewHTTPErrorAdapter(slog.Default())
	}
	return &HistoryHandlers{source: source, errorAdapter: adapter}
}

// HandleGenerations returns ?limit=N recent generations, newest first.
func (h *HistoryHandlers) HandleGenerations(w http.ResponseWriter, r *http.Request) {
	limit := eventstore.DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("limit must be a positive integer").
				WithContext("limit", raw).
				Build())
			return
		}
		limit = eventstore.ClampLimit(n)
	}

	records, err := h.source.History(r.Context(), limit)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := responses.GenerationsResponse{
		Success:     true,
		Limit:       limit,
		Generations: records,
		Summary:     eventstore.Summarize(records),
	}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write history response").Build())
	}
}
