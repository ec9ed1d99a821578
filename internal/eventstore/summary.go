package eventstore

import (
	"slices"
	"time"
)

// Summary is a read model over a page of generation records.
type Summary struct {
	Total    int            `json:"total"`
	ByFormat map[string]int `json:"byFormat"`
	Newest   *time.Time     `json:"newest,omitempty"`
	Oldest   *time.Time     `json:"oldest,omitempty"`
}

// Summarize folds records into per-format counts and the covered time span.
func Summarize(records []GenerationRecord) Summary {
	s := Summary{Total: len(records), ByFormat: make(map[string]int)}
	if len(records) == 0 {
		return s
	}
	for _, r := range records {
		s.ByFormat[r.Format]++
	}
	newest := slices.MaxFunc(records, func(a, b GenerationRecord) int { return a.Timestamp.Compare(b.Timestamp) }).Timestamp
	oldest := slices.MinFunc(records, func(a, b GenerationRecord) int { return a.Timestamp.Compare(b.Timestamp) }).Timestamp
	s.Newest = &newest
	s.Oldest = &oldest
	return s
}
