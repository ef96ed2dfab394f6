// Package service registers and removes push-notification devices.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/VictorSaf/ainvestfeed/internal/db"
	"github.com/VictorSaf/ainvestfeed/internal/device/domain"
	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
)

var ErrDeviceNotFound = apperr.NotFound("Device not found")

// Repo is the device repository used by the service.
type Repo interface {
	GetByUserAndToken(ctx context.Context, userID, pushToken string) (*domain.Device, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Device, error)
	Create(ctx context.Context, d *domain.Device) error
	Update(ctx context.Context, id string, r domain.Registration) (*domain.Device, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type DeviceService struct {
	repo Repo
}

func NewDeviceService(repo Repo) *DeviceService {
	return &DeviceService{repo: repo}
}

// Register creates the device, or updates it when the user already registered the push token.
// created reports which happened.
func (s *DeviceService) Register(ctx context.Context, userID string, reg domain.Registration) (d *domain.Device, created bool, err error) {
	existing, err := s.repo.GetByUserAndToken(ctx, userID, reg.PushToken)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return s.update(ctx, existing.ID, reg)
	}
	now := time.Now().UTC()
	d = &domain.Device{
		ID:          uuid.New().String(),
		UserID:      userID,
		PushToken:   reg.PushToken,
		Platform:    reg.Platform,
		DeviceModel: reg.DeviceModel,
		Locale:      reg.Locale,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		if !db.IsUniqueViolation(err) {
			return nil, false, err
		}
		// A concurrent request registered the same token first.
		existing, err = s.repo.GetByUserAndToken(ctx, userID, reg.PushToken)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, errors.New("device: conflicting registration vanished")
		}
		return s.update(ctx, existing.ID, reg)
	}
	return d, true, nil
}

func (s *DeviceService) update(ctx context.Context, id string, reg domain.Registration) (*domain.Device, bool, error) {
	d, err := s.repo.Update(ctx, id, reg)
	if err != nil {
		return nil, false, err
	}
	if d == nil {
		return nil, false, ErrDeviceNotFound
	}
	return d, false, nil
}

// List returns the user's devices.
func (s *DeviceService) List(ctx context.Context, userID string) ([]*domain.Device, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*domain.Device{}
	}
	return list, nil
}

// Delete removes the device. Devices owned by another user are reported as not found.
func (s *DeviceService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeviceNotFound
	}
	return nil
}
