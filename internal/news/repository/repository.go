package repository

import (
	"context"

	"github.com/VictorSaf/ainvestfeed/internal/news/domain"
)

// Repository defines persistence for news articles.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.News, error)
	GetByContentHash(ctx context.Context, hash string) (*domain.News, error)
	// Create inserts n. Returns domain.ErrConflict when a unique constraint rejects it.
	Create(ctx context.Context, n *domain.News) error
	List(ctx context.Context, f domain.ListFilter) ([]*domain.News, error)
	Count(ctx context.Context, f domain.ListFilter) (int64, error)
	Search(ctx context.Context, f domain.SearchFilter) ([]*domain.News, error)
}
