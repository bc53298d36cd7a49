// Package engine wires the scoring pipeline together: text extraction,
// signal detection, rule scoring, and the optional AI suggestion.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/resumetools/ats-scanner/internal/ai"
	"github.com/resumetools/ats-scanner/internal/detect"
	"github.com/resumetools/ats-scanner/internal/extract"
	"github.com/resumetools/ats-scanner/internal/scoring"
)

const defaultAITimeout = 30 * time.Second

// Options configures a pipeline engine. Extractor and Suggester are
// optional; nil values fall back to the default extractor and to no AI.
type Options struct {
	Keywords  []string
	Extractor extract.Extractor
	Suggester ai.Suggester
	AITimeout time.Duration
	Logger    *zap.Logger
}

// Engine runs stateless scoring invocations. All fields are set at
// construction and read-only afterwards, so one engine serves concurrent
// requests.
type Engine struct {
	extractor extract.Extractor
	detector  *detect.Detector
	scorer    *scoring.Engine
	suggester ai.Suggester
	aiTimeout time.Duration
	logger    *zap.Logger
}

// New builds an engine from the options.
func New(opts Options) *Engine {
	extractor := opts.Extractor
	if extractor == nil {
		extractor = extract.New()
	}

	timeout := opts.AITimeout
	if timeout <= 0 {
		timeout = defaultAITimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		extractor: extractor,
		detector:  detect.New(opts.Keywords),
		scorer:    scoring.New(),
		suggester: opts.Suggester,
		aiTimeout: timeout,
		logger:    logger,
	}
}

// Run scores one document. Extraction-stage errors abort the pipeline before
// any scoring occurs; AI errors never do. The returned result is derived
// entirely from the submitted bytes, with no state carried between runs.
func (e *Engine) Run(ctx context.Context, data []byte, formatHint string, aiEnabled bool) (*scoring.Result, error) {
	format, err := extract.ParseFormat(formatHint)
	if err != nil {
		return nil, err
	}

	text, err := e.extractor.Extract(extract.Document{Data: data, Format: format})
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}

	e.logger.Debug("text extracted",
		zap.String("format", string(format)),
		zap.Int("characters", len(text)),
	)

	signals := e.detector.Detect(text)

	e.logger.Debug("signals detected",
		zap.Bool("has_email", signals.HasEmail),
		zap.Bool("has_phone", signals.HasPhone),
		zap.Int("sections", len(signals.Sections)),
		zap.Int("bullets", signals.BulletCount),
		zap.Int("keyword_hits", len(signals.KeywordHits)),
		zap.Int("words", signals.WordCount),
		zap.Bool("risky_formatting", signals.RiskyFormatting),
	)

	result := e.scorer.Score(signals)

	e.logger.Info("resume scored",
		zap.Int("score", result.Score),
		zap.Int("feedback_items", len(result.Feedback)),
	)

	if aiEnabled && e.suggester != nil {
		if item := e.suggest(ctx, text); item != nil {
			result.Feedback = append(result.Feedback, *item)
		}
	}

	return result, nil
}

// suggest asks the AI adapter for one extra feedback item. The call is
// bounded by the configured timeout; on any failure the result is nil and
// scoring proceeds without it.
func (e *Engine) suggest(ctx context.Context, text string) *scoring.FeedbackItem {
	ctx, cancel := context.WithTimeout(ctx, e.aiTimeout)
	defer cancel()

	suggestion, err := e.suggester.Suggest(ctx, text)
	if err != nil {
		e.logger.Warn("ai suggestion unavailable", zap.Error(err))
		return nil
	}

	if suggestion == "" {
		return nil
	}

	return &scoring.FeedbackItem{Severity: scoring.Insight, Message: suggestion}
}
