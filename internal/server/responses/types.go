// Package responses defines API response types used by the policygen HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/policygen/internal/eventstore"
	"git.home.luguber.info/inful/policygen/internal/service"
)

// GenerateResponse is returned by the preview endpoint.
type GenerateResponse struct {
	Success    bool   `json:"success"`
	PolicyText string `json:"policyText"`
}

// OptionsResponse lists the questionnaire choices.
type OptionsResponse struct {
	Success bool                `json:"success"`
	Options service.FormOptions `json:"options"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Version    string            `json:"version"`
	Commit     string            `json:"commit,omitempty"`
	Uptime     float64           `json:"uptime"`
	Components map[string]string `json:"components,omitempty"`
}

// GenerationsResponse is a page of generation history.
type GenerationsResponse struct {
	Success     bool                          `json:"success"`
	Limit       int                           `json:"limit"`
	Generations []eventstore.GenerationRecord `json:"generations"`
	Summary     eventstore.Summary            `json:"summary"`
}
