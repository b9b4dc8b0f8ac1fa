package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Definition
var (
	lightcurvesAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "astrolens_lightcurves_analyzed_total",
			Help: "Total number of lightcurves successfully analyzed.",
		},
	)
	analysisFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astrolens_analysis_failures_total",
			Help: "Total number of lightcurves rejected by the analysis chain.",
		},
		[]string{"reason"},
	)
	stateSegmentsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astrolens_state_segments_total",
			Help: "Total number of state segments detected, by state.",
		},
		[]string{"state"},
	)
	flareScansPositive = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "astrolens_flare_scans_positive_total",
			Help: "Total number of lightcurves whose cumulative trend scan flagged a flare.",
		},
	)
	sourceTotalCounts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "astrolens_source_total_counts",
			Help: "Net photon counts of the last analyzed observation per source.",
		},
		[]string{"obsid"},
	)
	sourceRateKs = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "astrolens_source_rate_ks",
			Help: "Count rate (counts/ks) of the last analyzed observation per source.",
		},
		[]string{"obsid"},
	)
	dominantPeriodSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "astrolens_dominant_period_seconds",
			Help: "Strongest significant periodogram period of the last analyzed observation per source.",
		},
		[]string{"obsid"},
	)
)
