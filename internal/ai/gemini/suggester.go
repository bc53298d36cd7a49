package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/resumetools/ats-scanner/internal/util"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	// maxResumeRunes bounds the resume text sent to the model so a single
	// oversized upload cannot blow the prompt budget.
	maxResumeRunes = 12000
)

// Suggester asks Gemini for resume improvement suggestions. Outbound calls
// are paced by the limiter; the caller bounds them with a context deadline.
type Suggester struct {
	generator contentGenerator
	limiter   *rate.Limiter
	logger    *zap.Logger
	maxLogLen int
}

// NewSuggester creates the Gemini-backed suggestion adapter.
func NewSuggester(generator contentGenerator, limiter *rate.Limiter, maxLogLength int, logger *zap.Logger) *Suggester {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Suggester{
		generator: generator,
		limiter:   limiter,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Suggest sends the resume text to Gemini and returns its reply. No retries:
// the caller treats any error as "no suggestion".
func (s *Suggester) Suggest(ctx context.Context, resumeText string) (string, error) {
	resumeText = truncateRunes(strings.TrimSpace(resumeText), maxResumeRunes)
	if resumeText == "" {
		return "", fmt.Errorf("resume text is required")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	prompt := buildPrompt(resumeText)

	s.logger.Debug("gemini suggestion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Debug("gemini suggestion response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
	)

	return strings.TrimSpace(raw), nil
}

func buildPrompt(resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Suggest improvements for this resume:\n{{RESUME_TEXT}}"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
