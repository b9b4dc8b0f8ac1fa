package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/astrolens/astrolens/internal/config"
	"github.com/astrolens/astrolens/internal/message"
)

// Pipeline orchestrates the stages: consumer, parsing, analysis, reporting.
type Pipeline struct {
	cfg      *config.Config
	consumer *Consumer
	analyzer *Analyzer
	reporter *Reporter
	logger   *zap.Logger

	rawMessages  chan []byte
	observations chan *message.ObservationMessage
	results      chan AnalysisResult
}

// New creates and wires up a new analysis pipeline.
func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	initLogger := logger.Named("pipeline.init")
	initLogger.Debug("Creating pipeline components...")

	bufferSize := cfg.Pipeline.ChannelBuffer
	rawMessages := make(chan []byte, bufferSize)
	observations := make(chan *message.ObservationMessage, bufferSize)
	results := make(chan AnalysisResult, bufferSize)
	initLogger.Debug("Channels created", zap.Int("bufferSize", bufferSize))

	consumerInstance, err := NewConsumer(cfg.Kafka, rawMessages, logger.Named("consumer"))
	if err != nil {
		initLogger.Error("Failed to create consumer", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrConsumerCreationFailed, err)
	}
	initLogger.Debug("Consumer created")

	analyzerInstance := NewAnalyzer(cfg.Analysis, cfg.Pipeline.Workers, observations, results, logger.Named("analyzer"))
	initLogger.Debug("Analyzer created")

	reporterInstance := NewReporter(results, logger.Named("reporter"))
	initLogger.Debug("Reporter created")

	p := &Pipeline{
		cfg:          cfg,
		consumer:     consumerInstance,
		analyzer:     analyzerInstance,
		reporter:     reporterInstance,
		logger:       logger.Named("pipeline"),
		rawMessages:  rawMessages,
		observations: observations,
		results:      results,
	}

	initLogger.Info("Pipeline instance created successfully")
	return p, nil
}

// Run starts all pipeline components and waits for them to complete or
// context cancellation.
func (p *Pipeline) Run(ctx context.Context) error {
	sugar := p.logger.Sugar()
	var wg sync.WaitGroup
	pipelineErr := make(chan error, 4) // consumer, parser, analyzer, reporter

	sugar.Info("Pipeline Run: Starting components...")

	wg.Add(4)
	go p.runConsumer(ctx, &wg, pipelineErr)
	go p.runParser(ctx, &wg)
	go p.runAnalyzer(ctx, &wg, pipelineErr)
	go p.runReporter(ctx, &wg, pipelineErr)

	// Wait for context cancellation or the first error from any component
	var firstErr error
	select {
	case <-ctx.Done():
		sugar.Info("Pipeline Run: Context cancelled. Waiting for components to finish...")
		firstErr = ctx.Err()
	case err := <-pipelineErr:
		sugar.Errorw("Pipeline Run: Received error from a component, initiating shutdown...", zap.Error(err))
		firstErr = err
	}

	sugar.Debug("Pipeline Run: Waiting on WaitGroup...")
	wg.Wait()
	sugar.Info("Pipeline Run: All components finished.")

	if firstErr != nil && !errors.Is(firstErr, context.Canceled) {
		return firstErr
	}
	return nil
}

// runConsumer executes the consumer component logic in a goroutine.
func (p *Pipeline) runConsumer(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()
	defer func() {
		close(p.rawMessages)
		p.logger.Debug("Raw messages channel closed")
	}()

	p.logger.Debug("Starting consumer goroutine...")
	if err := p.consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Consumer component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrConsumerRunFailed, err)
	} else if err == nil {
		p.logger.Debug("Consumer goroutine finished normally")
	} else {
		p.logger.Debug("Consumer goroutine cancelled gracefully")
	}
}

// runParser decodes raw Kafka payloads into observation messages.
func (p *Pipeline) runParser(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		close(p.observations)
		p.logger.Debug("Observations channel closed")
	}()

	parserLogger := p.logger.Named("parser").Sugar()
	parserLogger.Debug("Starting parser goroutine...")

	for {
		select {
		case rawMsg, ok := <-p.rawMessages:
			if !ok {
				parserLogger.Debug("Parser finished (raw message channel closed).")
				return
			}

			obs, err := message.Parse(rawMsg)
			if err != nil {
				parserLogger.Warnw("Failed to parse observation message, skipping", zap.Error(err))
				continue
			}

			select {
			case p.observations <- obs:

			case <-ctx.Done():
				parserLogger.Debugw("Parser context cancelled during send.", zap.Error(ctx.Err()))
				return
			}

		case <-ctx.Done():
			parserLogger.Debugw("Parser context cancelled while waiting for raw message.", zap.Error(ctx.Err()))
			return
		}
	}
}

// runAnalyzer executes the analyzer component logic in a goroutine.
func (p *Pipeline) runAnalyzer(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()
	defer func() {
		close(p.results)
		p.logger.Debug("Results channel closed")
	}()

	p.logger.Debug("Starting analyzer goroutine...")
	if err := p.analyzer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Analyzer component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrAnalyzerRunFailed, err)
	} else if err == nil {
		p.logger.Debug("Analyzer goroutine finished normally")
	} else {
		p.logger.Debug("Analyzer goroutine cancelled gracefully")
	}
}

// runReporter executes the reporter component logic in a goroutine.
func (p *Pipeline) runReporter(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()

	p.logger.Debug("Starting reporter goroutine...")
	if err := p.reporter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Reporter component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrReporterRunFailed, err)
	} else if err == nil {
		p.logger.Debug("Reporter goroutine finished normally")
	} else {
		p.logger.Debug("Reporter goroutine cancelled gracefully")
	}
}
