package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/db/sqlc/gen"
	"github.com/VictorSaf/ainvestfeed/internal/session/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a session repository that uses the given db for persistence.
func NewPostgresRepository(db gen.DBTX) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// Create persists the session. The session must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.queries.CreateSession(ctx, gen.CreateSessionParams{
		ID:               s.ID,
		UserID:           s.UserID,
		TokenHash:        s.TokenHash,
		RefreshTokenHash: hashToNull(s.RefreshTokenHash),
		ExpiresAt:        s.ExpiresAt,
		CreatedAt:        s.CreatedAt,
	})
	return err
}

// GetByRefreshHash returns the session whose refresh token hashes to refreshHash, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByRefreshHash(ctx context.Context, refreshHash string) (*domain.Session, error) {
	if refreshHash == "" {
		return nil, nil
	}
	s, err := r.queries.GetSessionByRefreshHash(ctx, hashToNull(refreshHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genSessionToDomain(&s), nil
}

// UpdateLastUsed sets last_used_at for the session.
func (r *PostgresRepository) UpdateLastUsed(ctx context.Context, id string, at time.Time) error {
	return r.queries.UpdateSessionLastUsed(ctx, gen.UpdateSessionLastUsedParams{
		ID:         id,
		LastUsedAt: sql.NullTime{Time: at, Valid: true},
	})
}

// DeleteByRefreshHash removes the session(s) matching refreshHash and returns how many were deleted.
func (r *PostgresRepository) DeleteByRefreshHash(ctx context.Context, refreshHash string) (int64, error) {
	if refreshHash == "" {
		return 0, nil
	}
	return r.queries.DeleteSessionByRefreshHash(ctx, hashToNull(refreshHash))
}

func hashToNull(h string) sql.NullString {
	return sql.NullString{String: h, Valid: h != ""}
}

func genSessionToDomain(s *gen.UserSession) *domain.Session {
	if s == nil {
		return nil
	}
	var lastUsed *time.Time
	if s.LastUsedAt.Valid {
		lastUsed = &s.LastUsedAt.Time
	}
	return &domain.Session{
		ID:               s.ID,
		UserID:           s.UserID,
		TokenHash:        s.TokenHash,
		RefreshTokenHash: s.RefreshTokenHash.String,
		ExpiresAt:        s.ExpiresAt,
		LastUsedAt:       lastUsed,
		CreatedAt:        s.CreatedAt,
	}
}
