package engine

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

const allowQuery = "data.ainvestfeed.authz.allow"

// DefaultRegoPolicy grants ingestion and analysis to admin and power users and
// scraping management to admins only. Everything else is denied.
const DefaultRegoPolicy = `package ainvestfeed.authz

default allow := false

role_actions := {
	"admin": {"news:ingest", "news:analyze", "scraping:manage"},
	"power": {"news:ingest", "news:analyze"},
}

allow if {
	input.role != ""
	input.action in role_actions[input.role]
}
`

// OPAEvaluator evaluates the authorization policy with an in-process OPA engine.
// The query is prepared once; Allow is safe for concurrent use.
type OPAEvaluator struct {
	query rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles policy (DefaultRegoPolicy when empty). The policy
// must define data.ainvestfeed.authz.allow.
func NewOPAEvaluator(ctx context.Context, policy string) (*OPAEvaluator, error) {
	if policy == "" {
		policy = DefaultRegoPolicy
	}
	pq, err := rego.New(
		rego.Query(allowQuery),
		rego.Module("authz.rego", policy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile authz policy: %w", err)
	}
	return &OPAEvaluator{query: pq}, nil
}

// Allow evaluates the policy for in. Any evaluation failure returns false and the error.
func (e *OPAEvaluator) Allow(ctx context.Context, in Input) (bool, error) {
	rs, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"user_id": in.UserID,
		"role":    in.Role,
		"action":  in.Action,
	}))
	if err != nil {
		return false, fmt.Errorf("eval authz policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, fmt.Errorf("authz policy returned no result")
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("authz policy returned %T, want bool", rs[0].Expressions[0].Value)
	}
	return allowed, nil
}

// HealthCheck verifies that the engine evaluates a known-denied input. Does not touch the database.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	_, err := e.Allow(ctx, Input{Role: "user", Action: ActionNewsIngest})
	return err
}
