package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/db/sqlc/gen"
	"github.com/VictorSaf/ainvestfeed/internal/device/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a device repository that uses the given db for persistence.
func NewPostgresRepository(db gen.DBTX) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// GetByUserAndToken returns the user's device with pushToken, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByUserAndToken(ctx context.Context, userID, pushToken string) (*domain.Device, error) {
	d, err := r.queries.GetDeviceByUserAndToken(ctx, gen.GetDeviceByUserAndTokenParams{UserID: userID, PushToken: pushToken})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genDeviceToDomain(&d), nil
}

// ListByUser returns the user's devices. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Device, error) {
	list, err := r.queries.ListDevicesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Device, len(list))
	for i := range list {
		out[i] = genDeviceToDomain(&list[i])
	}
	return out, nil
}

// Create persists the device. The device must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, d *domain.Device) error {
	_, err := r.queries.CreateDevice(ctx, gen.CreateDeviceParams{
		ID:          d.ID,
		UserID:      d.UserID,
		PushToken:   d.PushToken,
		Platform:    strPtrToNull(d.Platform),
		DeviceModel: strPtrToNull(d.DeviceModel),
		Locale:      strPtrToNull(d.Locale),
		CreatedAt:   d.CreatedAt,
	})
	return err
}

// Update overwrites the non-nil optional fields of the device. Returns nil, nil if it does not exist.
func (r *PostgresRepository) Update(ctx context.Context, id string, reg domain.Registration) (*domain.Device, error) {
	d, err := r.queries.UpdateDevice(ctx, gen.UpdateDeviceParams{
		Platform:    strPtrToNull(reg.Platform),
		DeviceModel: strPtrToNull(reg.DeviceModel),
		Locale:      strPtrToNull(reg.Locale),
		UpdatedAt:   time.Now().UTC(),
		ID:          id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genDeviceToDomain(&d), nil
}

// Delete removes the device if it belongs to userID. Reports whether a row was deleted.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	n, err := r.queries.DeleteDevice(ctx, gen.DeleteDeviceParams{ID: id, UserID: userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
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

func genDeviceToDomain(d *gen.Device) *domain.Device {
	if d == nil {
		return nil
	}
	return &domain.Device{
		ID:          d.ID,
		UserID:      d.UserID,
		PushToken:   d.PushToken,
		Platform:    nullToStrPtr(d.Platform),
		DeviceModel: nullToStrPtr(d.DeviceModel),
		Locale:      nullToStrPtr(d.Locale),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
