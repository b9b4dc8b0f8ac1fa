package pipeline

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/astrolens/astrolens/internal/analysis"
)

// Reporter consumes analysis results, exports them as Prometheus metrics and
// raises log alerts for detected flare and eclipse activity. It is the only
// stage that talks to the outside world about outcomes; the engine itself
// never logs.
type Reporter struct {
	input  <-chan AnalysisResult
	logger *zap.Logger
}

// NewReporter creates a new Reporter instance.
func NewReporter(input <-chan AnalysisResult, logger *zap.Logger) *Reporter {
	logger.Debug("Reporter initialized")
	return &Reporter{
		input:  input,
		logger: logger,
	}
}

// Run starts the reporter's processing loop.
func (r *Reporter) Run(ctx context.Context) error {
	sugar := r.logger.Sugar()
	sugar.Info("Starting reporter loop...")
	defer sugar.Info("Reporter loop stopped.")

	for {
		select {
		case result, ok := <-r.input:
			if !ok {
				sugar.Info("Reporter input channel closed.")
				return nil
			}
			r.processResult(result)

		case <-ctx.Done():
			sugar.Info("Context cancelled, stopping reporter.")
			return ctx.Err()
		}
	}
}

func (r *Reporter) processResult(result AnalysisResult) {
	sugar := r.logger.Sugar()

	if result.Err != nil {
		analysisFailures.WithLabelValues(failureReason(result.Err)).Inc()
		sugar.Warnw("Lightcurve rejected by analysis chain",
			zap.String("obsid", result.ObsID),
			zap.Error(result.Err),
		)
		return
	}

	lightcurvesAnalyzed.Inc()
	sourceTotalCounts.WithLabelValues(result.ObsID).Set(result.Summary.TotalCounts)
	if !math.IsNaN(result.Summary.RateKs) {
		sourceRateKs.WithLabelValues(result.ObsID).Set(result.Summary.RateKs)
	}

	counts := result.stateCounts()
	for state, n := range counts {
		stateSegmentsDetected.WithLabelValues(state.String()).Add(float64(n))
	}

	if len(result.PSD.Candidates) > 0 {
		dominantPeriodSeconds.WithLabelValues(result.ObsID).Set(result.PSD.Candidates[0].Period)
	}

	if result.FlareFound {
		flareScansPositive.Inc()
	}

	r.alertOnActivity(result, counts)

	sugar.Infow("Lightcurve analyzed",
		"obsid", result.ObsID,
		"galaxy", result.Galaxy,
		"total_counts", result.Summary.TotalCounts,
		"observation_time_ks", result.Summary.ObservationTimeKs,
		"rate_ks", result.Summary.RateKs,
		"segments", len(result.Segments),
		"psd_candidates", len(result.PSD.Candidates),
	)
}

// alertOnActivity logs warnings for confirmed flare or eclipse intervals so
// downstream alerting can pick them up from the structured log stream.
func (r *Reporter) alertOnActivity(result AnalysisResult, counts map[analysis.State]int) {
	sugar := r.logger.Sugar()

	for _, seg := range result.Segments {
		if seg.State == analysis.StateQuiescent {
			continue
		}
		sugar.Warnw("Activity segment detected",
			"obsid", result.ObsID,
			"state", seg.State.String(),
			"start_s", seg.Start,
			"end_s", seg.End,
		)
	}

	if result.FlareFound && counts[analysis.StateFlare] == 0 {
		sugar.Warnw("Trend scan flagged a flare the state detector did not confirm",
			"obsid", result.ObsID,
		)
	}

	for _, ecl := range result.Eclipses {
		sugar.Warnw("Eclipse candidate from cumulative trend scan",
			"obsid", result.ObsID,
			"start_s", ecl.Start,
			"end_s", ecl.End,
		)
	}
}

// failureReason maps chain errors to a bounded metric label set.
func failureReason(err error) string {
	switch {
	case errors.Is(err, analysis.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, analysis.ErrEmptySeries):
		return "empty_series"
	case errors.Is(err, analysis.ErrNonUniformSampling):
		return "non_uniform_sampling"
	case errors.Is(err, analysis.ErrInsufficientData):
		return "insufficient_data"
	default:
		return "other"
	}
}
