// Package events publishes notifications about produced policies.
//
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/policygen/internal/eventstore"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
)

// TypePolicyGenerated is the event type carried in every message.
const TypePolicyGenerated = "policy.generated"

// PolicyGenerated mirrors a generation history record. It carries no
// settings payload.
type PolicyGenerated struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Website     string    `json:"website"`
	Format      string    `json:"format"`
	Sections    []string  `json:"sections"`
	Fingerprint string    `json:"fingerprint"`
}

// FromRecord builds the event for a history record.
func FromRecord(rec eventstore.GenerationRecord) PolicyGenerated {
	return PolicyGenerated{
		Type:        TypePolicyGenerated,
		ID:          rec.ID,
		Timestamp:   rec.Timestamp,
		Website:     rec.Website,
		Format:      rec.Format,
		Sections:    rec.Sections,
		Fingerprint: rec.Fingerprint,
	}
}

// Encode serializes the event as JSON.
func (e PolicyGenerated) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryMessaging, "failed to marshal event").
			WithContext("id", e.ID).
			Build()
	}
	return data, nil
}

// Publisher delivers generation events.
type Publisher interface {
	Publish(ctx context.Context, ev PolicyGenerated) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, PolicyGenerated) error { return nil }
func (NoopPublisher) Close() error                                   { return nil }
