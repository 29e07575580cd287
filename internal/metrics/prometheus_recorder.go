package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitegen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	registry         *prom.Registry
	stageDuration    *prom.HistogramVec
	buildDuration    prom.Histogram
	stageResults     *prom.CounterVec
	buildOutcome     *prom.CounterVec
	filesWritten     *prom.CounterVec
	contentSkipped   *prom.CounterVec
	templateWarnings *prom.CounterVec
	contentItems     *prom.GaugeVec
	lastBuild        prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.filesWritten = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Output files written by kind",
		}, []string{"kind"})
		pr.contentSkipped = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_skipped_total",
			Help:      "Content files excluded from the build by reason",
		}, []string{"reason"})
		pr.templateWarnings = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "template_warnings_total",
			Help:      "Template engine warnings by kind",
		}, []string{"kind"})
		pr.contentItems = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "content_items",
			Help:      "Published content items in the last build",
		}, []string{"kind"})
		pr.lastBuild = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time the last build finished",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
			pr.filesWritten, pr.contentSkipped, pr.templateWarnings, pr.contentItems, pr.lastBuild)
	})
	return pr
}

// Registry returns the registry the collectors are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
	p.lastBuild.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncFilesWritten(kind string) {
	if p == nil || p.filesWritten == nil {
		return
	}
	p.filesWritten.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncContentSkipped(reason string) {
	if p == nil || p.contentSkipped == nil {
		return
	}
	p.contentSkipped.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) IncTemplateWarning(kind string) {
	if p == nil || p.templateWarnings == nil {
		return
	}
	p.templateWarnings.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetContentItems(kind string, n int) {
	if p == nil || p.contentItems == nil {
		return
	}
	p.contentItems.WithLabelValues(kind).Set(float64(n))
}
