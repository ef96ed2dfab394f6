// Package engine decides which roles may perform privileged actions, using OPA Rego.
package engine

import "context"

// Actions checked by the HTTP layer.
const (
	ActionNewsIngest     = "news:ingest"
	ActionNewsAnalyze    = "news:analyze"
	ActionScrapingManage = "scraping:manage"
)

// Input is the authorization question: may a caller with Role perform Action?
type Input struct {
	UserID string
	Role   string
	Action string
}

// Evaluator evaluates authorization policies using OPA or other engines.
type Evaluator interface {
	// Allow reports whether the input is permitted. An evaluation error denies.
	Allow(ctx context.Context, in Input) (bool, error)
}
