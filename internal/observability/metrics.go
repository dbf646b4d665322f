package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Adapter call results
const (
	AdapterOK          = "ok"
	AdapterError       = "error"
	AdapterCancelled   = "cancelled"
	AdapterUnparseable = "unparseable"
	AdapterSkipped     = "skipped"
)

const fallbackFieldsMetric = "career_analysis_fallback_fields_total"

// Metrics records career analysis activity. A nil *Metrics discards
// everything, so callers never need to check.
type Metrics struct {
	analyses  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	adapter   *prometheus.CounterVec
	tokens    *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewMetrics registers the career analysis collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_analyses_total",
				Help: "Total number of career analyses by outcome",
			},
			[]string{"outcome"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: fallbackFieldsMetric,
				Help: "Analysis fields filled from deterministic fallback content",
			},
			[]string{"field"},
		),
		adapter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_analysis_adapter_calls_total",
				Help: "Generative adapter calls by result",
			},
			[]string{"result"},
		),
		tokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_analysis_tokens_total",
				Help: "Tokens consumed by generative calls",
			},
			[]string{"kind"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "career_analysis_duration_seconds",
				Help:    "Duration of career analyses in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
	}
}

// ObserveAnalysis counts a finished analysis and its duration
func (m *Metrics) ObserveAnalysis(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}

// FallbackUsed counts a field that fell back to deterministic content
func (m *Metrics) FallbackUsed(field string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(field).Inc()
}

// AdapterResult counts one adapter call outcome
func (m *Metrics) AdapterResult(result string) {
	if m == nil {
		return
	}
	m.adapter.WithLabelValues(result).Inc()
}

// TokensUsed adds reported token usage
func (m *Metrics) TokensUsed(prompt, completion int) {
	if m == nil {
		return
	}
	m.tokens.WithLabelValues("prompt").Add(float64(prompt))
	m.tokens.WithLabelValues("completion").Add(float64(completion))
}

// FallbackCounts gathers g and returns the fallback field counters keyed by
// field name. A registry without analyses yields an empty map.
func FallbackCounts(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	counts := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != fallbackFieldsMetric {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "field" {
					counts[label.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}
	return counts, nil
}
