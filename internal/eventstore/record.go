// Package eventstore keeps an append-only audit log of policy generations.
//
// A record describes what was produced (website, format, section ids and
// fingerprint) and never the submitted settings, which may contain personal
// data.
package eventstore

import (
	"time"

	"github.com/google/uuid"
)

// GenerationRecord is one entry in the generation history.
type GenerationRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Website     string    `json:"website"`
	Format      string    `json:"format"`
	Sections    []string  `json:"sections"`
	Fingerprint string    `json:"fingerprint"`
}

// NewGenerationRecord stamps a record with a fresh UUID and the given time.
func NewGenerationRecord(at time.Time, website, format string, sections []string, fingerprint string) GenerationRecord {
	return GenerationRecord{
		ID:          uuid.NewString(),
		Timestamp:   at.UTC(),
		Website:     website,
		Format:      format,
		Sections:    append([]string(nil), sections...),
		Fingerprint: fingerprint,
	}
}

func (r GenerationRecord) valid() bool {
	return r.ID != "" && !r.Timestamp.IsZero()
}
