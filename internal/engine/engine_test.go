package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/resumetools/ats-scanner/internal/extract"
	"github.com/resumetools/ats-scanner/internal/scoring"
)

var testKeywords = []string{"managed", "developed", "led", "achieved", "python", "go", "sql", "docker", "aws"}

const sampleResume = "Jane Doe jane@example.com 555-123-4567 " +
	"Summary Experience Education Skills " +
	"• developed services in Go and Python • managed releases with Docker " +
	"• led migrations to AWS • achieved 99.9% uptime with SQL tuning • mentored juniors"

type stubExtractor struct {
	text    string
	err     error
	lastDoc extract.Document
}

func (s *stubExtractor) Extract(doc extract.Document) (string, error) {
	s.lastDoc = doc
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type stubSuggester struct {
	suggestion  string
	err         error
	called      int
	hadDeadline bool
}

func (s *stubSuggester) Suggest(ctx context.Context, _ string) (string, error) {
	s.called++
	_, s.hadDeadline = ctx.Deadline()
	if s.err != nil {
		return "", s.err
	}
	return s.suggestion, nil
}

func TestRunScoresExtractedText(t *testing.T) {
	eng := New(Options{
		Keywords:  testKeywords,
		Extractor: &stubExtractor{text: sampleResume},
		Logger:    zap.NewNop(),
	})

	result, err := eng.Run(context.Background(), []byte("doc"), ".pdf", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("score out of range: %d", result.Score)
	}

	if len(result.Feedback) != 6 {
		t.Fatalf("expected 6 feedback items, got %d", len(result.Feedback))
	}
}

func TestRunUnsupportedFormat(t *testing.T) {
	extractor := &stubExtractor{text: sampleResume}
	eng := New(Options{Keywords: testKeywords, Extractor: extractor})

	result, err := eng.Run(context.Background(), []byte("doc"), ".png", false)
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result, got %+v", result)
	}
	if extractor.lastDoc.Data != nil {
		t.Fatalf("extraction must not run for an unsupported format")
	}
}

func TestRunExtractionErrorAbortsBeforeScoring(t *testing.T) {
	eng := New(Options{
		Keywords:  testKeywords,
		Extractor: &stubExtractor{err: extract.ErrEmptyDocument},
	})

	result, err := eng.Run(context.Background(), []byte("doc"), "pdf", false)
	if !errors.Is(err, extract.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result on extraction failure, got %+v", result)
	}
}

func TestRunDeterministicWithoutAI(t *testing.T) {
	eng := New(Options{
		Keywords:  testKeywords,
		Extractor: &stubExtractor{text: sampleResume},
	})

	first, err := eng.Run(context.Background(), []byte("doc"), "pdf", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := eng.Run(context.Background(), []byte("doc"), "pdf", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestRunAppendsSuggestion(t *testing.T) {
	suggester := &stubSuggester{suggestion: "Quantify your achievements."}
	eng := New(Options{
		Keywords:  testKeywords,
		Extractor: &stubExtractor{text: sampleResume},
		Suggester: suggester,
		AITimeout: time.Second,
	})

	result, err := eng.Run(context.Background(), []byte("doc"), "pdf", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Feedback) != 7 {
		t.Fatalf("expected 7 feedback items, got %d", len(result.Feedback))
	}

	last := result.Feedback[len(result.Feedback)-1]
	if last.Severity != scoring.Insight {
		t.Fatalf("expected Insight severity, got %v", last.Severity)
	}
	if last.Message != "Quantify your achievements." {
		t.Fatalf("unexpected suggestion: %s", last.Message)
	}

	if !suggester.hadDeadline {
		t.Fatalf("expected the suggestion call to carry a deadline")
	}
}

func TestRunSuggesterFailureIsSilent(t *testing.T) {
	extractor := &stubExtractor{text: sampleResume}

	baseline, err := New(Options{Keywords: testKeywords, Extractor: extractor}).
		Run(context.Background(), []byte("doc"), "pdf", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failing := &stubSuggester{err: context.DeadlineExceeded}
	result, err := New(Options{
		Keywords:  testKeywords,
		Extractor: extractor,
		Suggester: failing,
	}).Run(context.Background(), []byte("doc"), "pdf", true)
	if err != nil {
		t.Fatalf("suggester failure must not fail the run: %v", err)
	}

	if failing.called != 1 {
		t.Fatalf("expected one suggestion attempt, got %d", failing.called)
	}

	if !reflect.DeepEqual(baseline, result) {
		t.Fatalf("expected result identical to the no-AI run")
	}
}

func TestRunSuggesterSkippedWhenDisabled(t *testing.T) {
	suggester := &stubSuggester{suggestion: "should not appear"}
	eng := New(Options{
		Keywords:  testKeywords,
		Extractor: &stubExtractor{text: sampleResume},
		Suggester: suggester,
	})

	result, err := eng.Run(context.Background(), []byte("doc"), "pdf", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if suggester.called != 0 {
		t.Fatalf("suggester must not be invoked when ai is disabled")
	}
	if len(result.Feedback) != 6 {
		t.Fatalf("expected 6 feedback items, got %d", len(result.Feedback))
	}
}
