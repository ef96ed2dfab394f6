package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/db/sqlc/gen"
)

func TestGenSessionToDomain(t *testing.T) {
	used := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	row := &gen.UserSession{
		ID:               "s1",
		UserID:           "u1",
		TokenHash:        "th",
		RefreshTokenHash: sql.NullString{String: "rh", Valid: true},
		ExpiresAt:        used.Add(time.Hour),
		LastUsedAt:       sql.NullTime{Time: used, Valid: true},
	}
	s := genSessionToDomain(row)
	if s.RefreshTokenHash != "rh" {
		t.Errorf("RefreshTokenHash = %q, want rh", s.RefreshTokenHash)
	}
	if s.LastUsedAt == nil || !s.LastUsedAt.Equal(used) {
		t.Errorf("LastUsedAt = %v, want %v", s.LastUsedAt, used)
	}

	row.LastUsedAt = sql.NullTime{}
	row.RefreshTokenHash = sql.NullString{}
	s = genSessionToDomain(row)
	if s.LastUsedAt != nil || s.RefreshTokenHash != "" {
		t.Errorf("nullable columns not mapped to zero values: %+v", s)
	}
	if genSessionToDomain(nil) != nil {
		t.Error("genSessionToDomain(nil) should be nil")
	}
}

func TestEmptyHashShortCircuits(t *testing.T) {
	// queries is nil: any database access would panic.
	r := &PostgresRepository{}
	s, err := r.GetByRefreshHash(context.Background(), "")
	if s != nil || err != nil {
		t.Errorf("GetByRefreshHash(\"\") = (%v, %v), want (nil, nil)", s, err)
	}
	n, err := r.DeleteByRefreshHash(context.Background(), "")
	if n != 0 || err != nil {
		t.Errorf("DeleteByRefreshHash(\"\") = (%d, %v), want (0, nil)", n, err)
	}
}
