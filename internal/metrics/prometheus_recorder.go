package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "policygen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generationDuration *prom.HistogramVec
	generationResults  *prom.CounterVec
	sectionsRendered   *prom.CounterVec
	httpDuration       *prom.HistogramVec
	httpRequests       *prom.CounterVec
	eventPublishes     *prom.CounterVec
	historyWrites      *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		generationDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of policy generation including rendering",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"format"}),
		generationResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Policy generations by result",
		}, []string{"result"}),
		sectionsRendered: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sections_rendered_total",
			Help:      "Rendered policy sections by section id",
		}, []string{"section"}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "route"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
		eventPublishes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "event_publishes_total",
			Help:      "Generation event publishes by result",
		}, []string{"result"}),
		historyWrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "history_writes_total",
			Help:      "Generation history writes by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.generationDuration, pr.generationResults, pr.sectionsRendered,
		pr.httpDuration, pr.httpRequests, pr.eventPublishes, pr.historyWrites)
	return pr
}

func (p *PrometheusRecorder) ObserveGeneration(format string, d time.Duration) {
	if p == nil {
		return
	}
	p.generationDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGenerationResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.generationResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncSectionRendered(section string) {
	if p == nil {
		return
	}
	p.sectionsRendered.WithLabelValues(section).Inc()
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) IncEventPublish(success bool) {
	if p == nil {
		return
	}
	p.eventPublishes.WithLabelValues(resultOf(success)).Inc()
}

func (p *PrometheusRecorder) IncHistoryWrite(success bool) {
	if p == nil {
		return
	}
	p.historyWrites.WithLabelValues(resultOf(success)).Inc()
}
