package repository

import (
	"context"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/session/domain"
)

// Repository defines persistence for sessions.
type Repository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByRefreshHash(ctx context.Context, refreshHash string) (*domain.Session, error)
	UpdateLastUsed(ctx context.Context, id string, at time.Time) error
	DeleteByRefreshHash(ctx context.Context, refreshHash string) (int64, error)
}
