package repository

import (
	"context"

	"github.com/VictorSaf/ainvestfeed/internal/bookmark/domain"
)

// Repository defines persistence for bookmarks.
type Repository interface {
	Get(ctx context.Context, userID, newsID string) (*domain.Bookmark, error)
	Create(ctx context.Context, b *domain.Bookmark) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Saved, error)
}
