// Package scoring turns a detected signal set into a 0-100 ATS compatibility
// score with severity-tagged feedback.
package scoring

import "encoding/json"

// Severity classifies a feedback item. The presentation layer maps the tag
// to a display marker; scoring never embeds markers in message text.
type Severity int

const (
	Positive Severity = iota
	Warning
	Insight
)

func (s Severity) String() string {
	switch s {
	case Positive:
		return "positive"
	case Warning:
		return "warning"
	case Insight:
		return "insight"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the severity's name so consumers see an explicit tag
// rather than a bare enum value.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Marker returns the display glyph for the severity.
func (s Severity) Marker() string {
	switch s {
	case Positive:
		return "✓"
	case Warning:
		return "⚠"
	case Insight:
		return "🧠"
	default:
		return "?"
	}
}

// FeedbackItem is one user-facing piece of commentary.
type FeedbackItem struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the outcome of one scoring run: an integer score in [0, 100] and
// the ordered feedback list. It is produced once and never mutated.
type Result struct {
	Score    int            `json:"score"`
	Feedback []FeedbackItem `json:"feedback"`
}
