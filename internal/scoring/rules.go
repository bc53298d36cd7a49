package scoring

import (
	"fmt"
	"strings"

	"github.com/resumetools/ats-scanner/internal/detect"
)

// Rule weights. They sum to the 100-point scale.
const (
	contactWeight    = 10
	sectionsWeight   = 20
	bulletsWeight    = 15
	keywordsWeight   = 25
	lengthWeight     = 15
	formattingWeight = 15

	sectionsTarget = 4
	bulletsTarget  = 5
	keywordsTarget = 8

	bulletsPartialCap = 10
	lengthPartial     = 5
)

// rule is one weighted check against the signal set. Rules are additive and
// independent: no rule's outcome depends on another's.
type rule func(sig detect.SignalSet) (points int, item FeedbackItem)

// Engine applies the fixed, ordered rule set. It carries no mutable state
// and is safe to share across concurrent runs.
type Engine struct {
	rules []rule
}

// New returns the scoring engine with the rules in their fixed feedback
// order: contact, sections, bullets, keywords, length, formatting.
func New() *Engine {
	return &Engine{
		rules: []rule{
			contactRule,
			sectionsRule,
			bulletsRule,
			keywordsRule,
			lengthRule,
			formattingRule,
		},
	}
}

// Score evaluates every rule against the signal set, sums the awarded
// points, and clamps the total to [0, 100]. The feedback list always holds
// one item per rule, in rule order, regardless of which passed.
func (e *Engine) Score(sig detect.SignalSet) *Result {
	total := 0
	feedback := make([]FeedbackItem, 0, len(e.rules))

	for _, r := range e.rules {
		points, item := r(sig)
		total += points
		feedback = append(feedback, item)
	}

	return &Result{Score: clamp(total, 0, 100), Feedback: feedback}
}

func contactRule(sig detect.SignalSet) (int, FeedbackItem) {
	if sig.HasEmail && sig.HasPhone {
		return contactWeight, FeedbackItem{Positive, "Contact information found"}
	}
	return 0, FeedbackItem{Warning, "Missing contact information"}
}

func sectionsRule(sig detect.SignalSet) (int, FeedbackItem) {
	count := len(sig.Sections)
	if count >= sectionsTarget {
		return sectionsWeight, FeedbackItem{Positive, "Good section structure"}
	}

	points := count * sectionsWeight / sectionsTarget
	missing := missingSections(sig.Sections)
	return points, FeedbackItem{Warning, fmt.Sprintf("Consider adding missing sections: %s", strings.Join(missing, ", "))}
}

func bulletsRule(sig detect.SignalSet) (int, FeedbackItem) {
	if sig.BulletCount >= bulletsTarget {
		return bulletsWeight, FeedbackItem{Positive, "Strong use of bullet points"}
	}

	points := sig.BulletCount * bulletsPartialCap / bulletsTarget
	return points, FeedbackItem{Warning, "Add more bullet points for readability"}
}

func keywordsRule(sig detect.SignalSet) (int, FeedbackItem) {
	hits := len(sig.KeywordHits)
	if hits >= keywordsTarget {
		return keywordsWeight, FeedbackItem{Positive, "Strong keyword alignment"}
	}

	points := hits * keywordsWeight / keywordsTarget
	return points, FeedbackItem{Warning, "Add more role-relevant keywords"}
}

func lengthRule(sig detect.SignalSet) (int, FeedbackItem) {
	switch sig.Length {
	case detect.Ideal:
		return lengthWeight, FeedbackItem{Positive, "Resume length is appropriate"}
	case detect.TooShort:
		return lengthPartial, FeedbackItem{Warning, fmt.Sprintf("Resume is too short (%d words)", sig.WordCount)}
	default:
		return lengthPartial, FeedbackItem{Warning, fmt.Sprintf("Resume is too long (%d words)", sig.WordCount)}
	}
}

func formattingRule(sig detect.SignalSet) (int, FeedbackItem) {
	if !sig.RiskyFormatting {
		return formattingWeight, FeedbackItem{Positive, "No risky formatting detected"}
	}
	return 0, FeedbackItem{Warning, "Avoid tables and multi-column layouts for ATS"}
}

func missingSections(found []string) []string {
	present := make(map[string]bool, len(found))
	for _, s := range found {
		present[s] = true
	}

	missing := make([]string, 0, len(detect.CanonicalSections))
	for _, s := range detect.CanonicalSections {
		if !present[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
