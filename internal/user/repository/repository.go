package repository

import (
	"context"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *domain.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	// UpdateProfile applies the non-nil fields and returns the updated user, or nil if id does not exist.
	UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate) (*domain.User, error)
}
