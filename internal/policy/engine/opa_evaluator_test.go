package engine

import (
	"context"
	"testing"
)

func TestOPAEvaluator_Allow(t *testing.T) {
	ctx := context.Background()
	e, err := NewOPAEvaluator(ctx, "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}

	tests := []struct {
		name   string
		role   string
		action string
		want   bool
	}{
		{"admin ingest", "admin", ActionNewsIngest, true},
		{"admin analyze", "admin", ActionNewsAnalyze, true},
		{"admin scraping", "admin", ActionScrapingManage, true},
		{"power ingest", "power", ActionNewsIngest, true},
		{"power analyze", "power", ActionNewsAnalyze, true},
		{"power scraping denied", "power", ActionScrapingManage, false},
		{"user ingest denied", "user", ActionNewsIngest, false},
		{"user analyze denied", "user", ActionNewsAnalyze, false},
		{"empty role denied", "", ActionNewsIngest, false},
		{"unknown action denied", "admin", "news:delete", false},
		{"unknown role denied", "root", ActionNewsIngest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Allow(ctx, Input{UserID: "u1", Role: tt.role, Action: tt.action})
			if err != nil {
				t.Fatalf("Allow: %v", err)
			}
			if got != tt.want {
				t.Errorf("Allow(%s, %s) = %v, want %v", tt.role, tt.action, got, tt.want)
			}
		})
	}
}

func TestOPAEvaluator_CustomPolicy(t *testing.T) {
	ctx := context.Background()
	policy := `package ainvestfeed.authz

default allow := false

allow if input.role == "user"
`
	e, err := NewOPAEvaluator(ctx, policy)
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	got, err := e.Allow(ctx, Input{Role: "user", Action: ActionNewsIngest})
	if err != nil || !got {
		t.Errorf("Allow = (%v, %v), want (true, nil)", got, err)
	}
}

func TestNewOPAEvaluator_InvalidPolicy(t *testing.T) {
	if _, err := NewOPAEvaluator(context.Background(), "package broken\n\nallow if {"); err == nil {
		t.Fatal("NewOPAEvaluator should reject a policy that does not compile")
	}
}

func TestOPAEvaluator_HealthCheck(t *testing.T) {
	ctx := context.Background()
	e, err := NewOPAEvaluator(ctx, "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	if err := e.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}
