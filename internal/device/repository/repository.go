package repository

import (
	"context"

	"github.com/VictorSaf/ainvestfeed/internal/device/domain"
)

// Repository defines persistence for devices.
type Repository interface {
	GetByUserAndToken(ctx context.Context, userID, pushToken string) (*domain.Device, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Device, error)
	Create(ctx context.Context, d *domain.Device) error
	Update(ctx context.Context, id string, r domain.Registration) (*domain.Device, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}
