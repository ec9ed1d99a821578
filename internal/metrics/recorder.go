package metrics

import "time"

// ResultLabel enumerates generation outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultInvalid ResultLabel = "invalid"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for generations and the request layer.
type Recorder interface {
	ObserveGeneration(format string, d time.Duration)
	IncGenerationResult(result ResultLabel)
	IncSectionRendered(section string)
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
	IncEventPublish(success bool)
	IncHistoryWrite(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGeneration(string, time.Duration)               {}
func (NoopRecorder) IncGenerationResult(ResultLabel)                       {}
func (NoopRecorder) IncSectionRendered(string)                             {}
func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
func (NoopRecorder) IncEventPublish(bool)                                  {}
func (NoopRecorder) IncHistoryWrite(bool)                                  {}

func resultOf(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}
