package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/VictorSaf/ainvestfeed/internal/bookmark/domain"
	"github.com/VictorSaf/ainvestfeed/internal/db/sqlc/gen"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a bookmark repository that uses the given db for persistence.
func NewPostgresRepository(db gen.DBTX) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// Get returns the user's bookmark for newsID, or nil if not bookmarked.
func (r *PostgresRepository) Get(ctx context.Context, userID, newsID string) (*domain.Bookmark, error) {
	b, err := r.queries.GetBookmark(ctx, gen.GetBookmarkParams{UserID: userID, NewsID: newsID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Bookmark{ID: b.ID, UserID: b.UserID, NewsID: b.NewsID, CreatedAt: b.CreatedAt}, nil
}

// Create persists the bookmark. Returns a unique violation if the user already bookmarked the article.
func (r *PostgresRepository) Create(ctx context.Context, b *domain.Bookmark) error {
	_, err := r.queries.CreateBookmark(ctx, gen.CreateBookmarkParams{
		ID:        b.ID,
		UserID:    b.UserID,
		NewsID:    b.NewsID,
		CreatedAt: b.CreatedAt,
	})
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.queries.DeleteBookmark(ctx, id)
}

// ListByUser returns the user's bookmarks, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]domain.Saved, error) {
	rows, err := r.queries.ListBookmarksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Saved, len(rows))
	for i, row := range rows {
		out[i] = domain.Saved{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			News:      domain.NewsRef{ID: row.NewsID, Title: row.Title, Excerpt: nullToStrPtr(row.Excerpt)},
		}
	}
	return out, nil
}

func nullToStrPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}
