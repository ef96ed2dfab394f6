package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/db"
	"github.com/VictorSaf/ainvestfeed/internal/db/sqlc/gen"
	"github.com/VictorSaf/ainvestfeed/internal/user/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(conn gen.DBTX) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(conn)}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genUserToDomain(&u), nil
}

// GetByEmail returns the user with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genUserToDomain(&u), nil
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.queries.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		FirstName:    strPtrToNull(u.FirstName),
		LastName:     strPtrToNull(u.LastName),
		Language:     sql.NullString{String: u.Language, Valid: u.Language != ""},
		Timezone:     sql.NullString{String: u.Timezone, Valid: u.Timezone != ""},
		CreatedAt:    u.CreatedAt,
	})
	if err != nil && db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrEmailTaken, err)
	}
	return err
}

// UpdateLastLogin records a successful login time.
func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.queries.UpdateUserLastLogin(ctx, gen.UpdateUserLastLoginParams{
		ID:          id,
		LastLoginAt: sql.NullTime{Time: at, Valid: true},
	})
}

// UpdateProfile applies the non-nil fields of p. Returns nil, nil if the user does not exist.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate) (*domain.User, error) {
	u, err := r.queries.UpdateUserProfile(ctx, gen.UpdateUserProfileParams{
		FirstName: strPtrToNull(p.FirstName),
		LastName:  strPtrToNull(p.LastName),
		Language:  strPtrToNull(p.Language),
		Timezone:  strPtrToNull(p.Timezone),
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genUserToDomain(&u), nil
}

func strPtrToNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullToStrPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func genUserToDomain(u *gen.User) *domain.User {
	if u == nil {
		return nil
	}
	var lastLogin *time.Time
	if u.LastLoginAt.Valid {
		lastLogin = &u.LastLoginAt.Time
	}
	return &domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         domain.Role(u.Role),
		IsActive:     u.IsActive,
		FirstName:    nullToStrPtr(u.FirstName),
		LastName:     nullToStrPtr(u.LastName),
		Language:     u.Language.String,
		Timezone:     u.Timezone.String,
		LastLoginAt:  lastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
