package pipeline

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/astrolens/astrolens/internal/analysis"
	"github.com/astrolens/astrolens/internal/config"
	"github.com/astrolens/astrolens/internal/message"
)

// Analyzer runs the per-lightcurve analysis chain over a pool of workers.
// Lightcurves are independent, so workers share nothing but the channels.
type Analyzer struct {
	cfg     config.AnalysisConfig
	workers int
	input   <-chan *message.ObservationMessage
	output  chan<- AnalysisResult
	logger  *zap.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(cfg config.AnalysisConfig, workers int, input <-chan *message.ObservationMessage, output chan<- AnalysisResult, logger *zap.Logger) *Analyzer {
	a := &Analyzer{
		cfg:     cfg,
		workers: workers,
		input:   input,
		output:  output,
		logger:  logger,
	}
	logger.Info("Analyzer initialized",
		zap.Int("workers", workers),
		zap.Float64("bin_width_s", cfg.BinWidth),
		zap.String("bin_mode", cfg.BinMode),
	)
	return a
}

// Run starts the worker pool and blocks until the input channel closes or
// the context is cancelled.
func (a *Analyzer) Run(ctx context.Context) error {
	sugar := a.logger.Sugar()
	sugar.Info("Starting analyzer workers...")
	defer sugar.Info("Analyzer stopped.")

	var wg sync.WaitGroup
	wg.Add(a.workers)
	for i := 0; i < a.workers; i++ {
		go func(id int) {
			defer wg.Done()
			a.workerLoop(ctx, id)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

func (a *Analyzer) workerLoop(ctx context.Context, id int) {
	logger := a.logger.Sugar().With("worker", id)
	for {
		select {
		case msg, ok := <-a.input:
			if !ok {
				logger.Debug("Analyzer input channel closed.")
				return
			}
			result := a.analyzeOne(msg)

			select {
			case a.output <- result:

			case <-ctx.Done():
				logger.Debugw("Context cancelled while sending result downstream.", zap.Error(ctx.Err()))
				return
			}

		case <-ctx.Done():
			logger.Debugw("Context cancelled while waiting for observation.", zap.Error(ctx.Err()))
			return
		}
	}
}

// analyzeOne runs the full chain over a single observation: summary, binning,
// spectral estimate, state segmentation, then the cumulative trend scans.
// The chain runs in dependency order; a failure short-circuits the rest.
func (a *Analyzer) analyzeOne(msg *message.ObservationMessage) AnalysisResult {
	result := AnalysisResult{ObsID: msg.ObsID, Galaxy: msg.Galaxy}

	series, err := msg.TimeSeries()
	if err != nil {
		result.Err = err
		return result
	}

	result.Summary, err = analysis.Summarize(series, msg.Metadata())
	if err != nil {
		result.Err = err
		return result
	}

	mode, err := analysis.ParseBinMode(a.cfg.BinMode)
	if err != nil {
		result.Err = err
		return result
	}
	result.Binned, err = analysis.BinSeries(series, a.cfg.BinWidth, mode)
	if err != nil {
		result.Err = err
		return result
	}

	// The spectral estimate needs a uniform grid; most observations leave a
	// ragged trailing bin, which is trimmed rather than treated as a failure.
	psd, err := analysis.EstimatePSD(analysis.TrimRaggedTail(result.Binned), a.cfg.PSDSigma)
	switch {
	case err == nil:
		result.PSD = psd
	case errors.Is(err, analysis.ErrNonUniformSampling), errors.Is(err, analysis.ErrInsufficientData):
		// Leave PSD empty.
	default:
		result.Err = err
		return result
	}

	rateBinned := result.Binned
	if mode != analysis.ModeRate {
		rateBinned, err = analysis.BinSeries(series, a.cfg.BinWidth, analysis.ModeRate)
		if err != nil {
			result.Err = err
			return result
		}
	}
	result.Segments, err = analysis.DetectStates(rateBinned, analysis.StateConfig{
		FlareThreshold:   a.cfg.FlareThreshold,
		EclipseThreshold: a.cfg.EclipseThreshold,
		MinRunLength:     a.cfg.MinRunLength,
	})
	if err != nil {
		result.Err = err
		return result
	}

	trendCfg := analysis.TrendConfig{
		GroupSize:        a.cfg.Trend.GroupSize,
		Sigma:            a.cfg.Trend.Sigma,
		ClusterThreshold: a.cfg.Trend.ClusterThreshold,
		EclipseSlopeMax:  a.cfg.Trend.EclipseSlopeMax,
	}
	flare, err := analysis.FlareScan(series, trendCfg)
	switch {
	case err == nil:
		result.FlareFound = flare
	case errors.Is(err, analysis.ErrInsufficientData):
		// Short observations simply skip the scan.
	default:
		result.Err = err
		return result
	}

	eclipses, err := analysis.EclipseScan(series, trendCfg)
	switch {
	case err == nil:
		result.Eclipses = eclipses
	case errors.Is(err, analysis.ErrInsufficientData):
	default:
		result.Err = err
		return result
	}

	return result
}
