package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the decision pipeline.
type Metrics struct {
	// Submission metrics
	SubmissionsTotal  *prometheus.CounterVec
	SubmissionsQueued prometheus.Gauge

	// Stage metrics
	StageDuration *prometheus.HistogramVec
	StageFailures *prometheus.CounterVec

	// Pipeline outcome metrics
	PipelineDuration *prometheus.HistogramVec
	PipelineTotal    *prometheus.CounterVec

	// LLM metrics
	LLMRetries   *prometheus.CounterVec
	LLMFallbacks *prometheus.CounterVec

	// Record gauge
	RecordsStored prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		SubmissionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govlayer_submissions_total",
				Help: "Total decision submissions accepted",
			},
			[]string{"company_id"},
		),

		SubmissionsQueued: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "govlayer_submissions_queued",
				Help: "Submissions waiting for a pipeline worker",
			},
		),

		StageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "govlayer_stage_duration_seconds",
				Help:    "Duration of individual pipeline stages",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"stage"}, // stage: extract, govern, graph, reason, pack
		),

		StageFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govlayer_stage_failures_total",
				Help: "Total pipeline stage failures",
			},
			[]string{"stage"},
		),

		PipelineDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "govlayer_pipeline_duration_seconds",
				Help:    "End-to-end pipeline duration per decision",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 90},
			},
			[]string{"company_id"},
		),

		PipelineTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govlayer_pipeline_total",
				Help: "Total pipeline runs by outcome",
			},
			[]string{"company_id", "status"}, // status: complete, failed
		),

		LLMRetries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govlayer_llm_retries_total",
				Help: "Total LLM extraction retries after parse failures",
			},
			[]string{"stage"}, // stage: extract, reason
		),

		LLMFallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govlayer_llm_fallbacks_total",
				Help: "Total falls back to the deterministic path",
			},
			[]string{"stage"},
		),

		RecordsStored: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "govlayer_records_stored",
				Help: "Decision records held in the store",
			},
		),
	}
}

// RecordSubmission counts an accepted submission.
func (m *Metrics) RecordSubmission(companyID string) {
	m.SubmissionsTotal.WithLabelValues(companyID).Inc()
}

// RecordStage records one stage's duration and outcome.
func (m *Metrics) RecordStage(stage string, seconds float64, failed bool) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
	if failed {
		m.StageFailures.WithLabelValues(stage).Inc()
	}
}

// RecordPipeline records an end-to-end pipeline outcome.
func (m *Metrics) RecordPipeline(companyID, status string, seconds float64) {
	m.PipelineDuration.WithLabelValues(companyID).Observe(seconds)
	m.PipelineTotal.WithLabelValues(companyID, status).Inc()
}

// RecordLLMRetry counts one retry in the given stage.
func (m *Metrics) RecordLLMRetry(stage string) {
	m.LLMRetries.WithLabelValues(stage).Inc()
}

// RecordLLMFallback counts a fall back to the deterministic path.
func (m *Metrics) RecordLLMFallback(stage string) {
	m.LLMFallbacks.WithLabelValues(stage).Inc()
}
