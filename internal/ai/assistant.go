package ai

import "context"

// Suggester produces a single improvement suggestion for the given resume
// text. Implementations are best-effort: callers treat any error as "no
// suggestion" and never fail scoring because of it.
type Suggester interface {
	Suggest(ctx context.Context, resumeText string) (string, error)
}
