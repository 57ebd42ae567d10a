package analysis

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the analysis subsystem.
type Metrics struct {
	AnalysesTotal     *prometheus.CounterVec
	AnalysisDuration  prometheus.Histogram
	ExtractorDuration *prometheus.HistogramVec
	ExtractorItems    *prometheus.HistogramVec
	BundleEntities    prometheus.Histogram
	BundleRisks       prometheus.Histogram
	BundleStories     prometheus.Histogram
	SubmitsTotal      *prometheus.CounterVec
}

// NewMetrics registers and returns analysis metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "specgenie_analyses_total",
			Help: "Total analysis runs by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "specgenie_analysis_duration_seconds",
			Help:    "Duration of analysis runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 100us .. ~1.6s
		}),
		ExtractorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "specgenie_extractor_duration_seconds",
			Help:    "Duration of individual extractor stages in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10us .. ~160ms
		}, []string{"extractor"}),
		ExtractorItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "specgenie_extractor_items",
			Help:    "Artifacts emitted per extractor stage.",
			Buckets: prometheus.LinearBuckets(0, 2, 16), // 0 .. 30
		}, []string{"extractor"}),
		BundleEntities: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "specgenie_bundle_entities",
			Help:    "Entities per result bundle.",
			Buckets: prometheus.LinearBuckets(0, 2, 12), // 0 .. 22
		}),
		BundleRisks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "specgenie_bundle_risks",
			Help:    "Risks per result bundle.",
			Buckets: prometheus.LinearBuckets(0, 2, 12), // 0 .. 22
		}),
		BundleStories: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "specgenie_bundle_stories",
			Help:    "User stories per result bundle.",
			Buckets: prometheus.LinearBuckets(0, 2, 12), // 0 .. 22
		}),
		SubmitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "specgenie_submits_total",
			Help: "Total description submissions by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.ExtractorDuration,
		m.ExtractorItems,
		m.BundleEntities,
		m.BundleRisks,
		m.BundleStories,
		m.SubmitsTotal,
	)

	return m
}

// Hooks returns an EngineHooks that increments the corresponding metrics.
func (m *Metrics) Hooks() EngineHooks {
	return EngineHooks{
		OnExtract: func(name string, duration float64, items int) {
			m.ExtractorDuration.WithLabelValues(name).Observe(duration)
			m.ExtractorItems.WithLabelValues(name).Observe(float64(items))
		},
		OnComplete: func(e *CompleteEvent) {
			m.AnalysesTotal.WithLabelValues("ok").Inc()
			m.AnalysisDuration.Observe(e.Duration)
			m.BundleEntities.Observe(float64(e.Entities))
			m.BundleRisks.Observe(float64(e.Risks))
			m.BundleStories.Observe(float64(e.Stories))
		},
	}
}
