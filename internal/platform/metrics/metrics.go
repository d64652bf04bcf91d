package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TriageMetrics expone contadores/histogramas del pipeline de triage.
// Todos los métodos toleran receptor nil para que los tests no tengan que armar un registry.
type TriageMetrics struct {
	stageTotal       *prometheus.CounterVec
	healedTotal      *prometheus.CounterVec
	violationsTotal  *prometheus.CounterVec
	generatorLatency *prometheus.HistogramVec
}

func NewTriageMetrics(reg prometheus.Registerer) *TriageMetrics {
	m := &TriageMetrics{
		stageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pettriage",
			Subsystem: "pipeline",
			Name:      "stage_requests_total",
			Help:      "Stage calls by outcome status",
		}, []string{"stage", "status"}),
		healedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pettriage",
			Subsystem: "pipeline",
			Name:      "healed_total",
			Help:      "Generator outputs repaired by the decision enforcer",
		}, []string{"stage", "kind"}),
		violationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pettriage",
			Subsystem: "gateway",
			Name:      "contract_violations_total",
			Help:      "Generator payloads that did not satisfy the requested contract",
		}, []string{"stage"}),
		generatorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pettriage",
			Subsystem: "gateway",
			Name:      "generator_latency_seconds",
			Help:      "Latency of calls to the text generation provider",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"provider", "stage", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.stageTotal, m.healedTotal, m.violationsTotal, m.generatorLatency)
	return m
}

func (m *TriageMetrics) ObserveStage(stage, status string) {
	if m == nil {
		return
	}
	m.stageTotal.WithLabelValues(stage, status).Inc()
}

func (m *TriageMetrics) ObserveHealed(stage, kind string) {
	if m == nil {
		return
	}
	m.healedTotal.WithLabelValues(stage, kind).Inc()
}

func (m *TriageMetrics) ObserveViolations(stage string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.violationsTotal.WithLabelValues(stage).Inc()
}

func (m *TriageMetrics) ObserveGenerator(provider, stage string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	m.generatorLatency.WithLabelValues(provider, stage, strconv.FormatBool(ok)).Observe(d.Seconds())
}
