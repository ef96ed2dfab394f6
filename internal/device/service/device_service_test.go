package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/VictorSaf/ainvestfeed/internal/device/domain"
)

type memRepo struct {
	mu sync.Mutex
	m  map[string]*domain.Device
	// raceOnCreate simulates a concurrent insert of the same token.
	raceOnCreate bool
}

func newMemRepo() *memRepo {
	return &memRepo{m: make(map[string]*domain.Device)}
}

func (r *memRepo) GetByUserAndToken(ctx context.Context, userID, pushToken string) (*domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.m {
		if d.UserID == userID && d.PushToken == pushToken {
			c := *d
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Device
	for _, d := range r.m {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memRepo) Create(ctx context.Context, d *domain.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceOnCreate {
		r.raceOnCreate = false
		winner := *d
		winner.ID = "winner"
		r.m[winner.ID] = &winner
		return &pgconn.PgError{Code: "23505"}
	}
	c := *d
	r.m[d.ID] = &c
	return nil
}

func (r *memRepo) Update(ctx context.Context, id string, reg domain.Registration) (*domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	if reg.Platform != nil {
		d.Platform = reg.Platform
	}
	if reg.DeviceModel != nil {
		d.DeviceModel = reg.DeviceModel
	}
	if reg.Locale != nil {
		d.Locale = reg.Locale
	}
	c := *d
	return &c, nil
}

func (r *memRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.m[id]
	if !ok || d.UserID != userID {
		return false, nil
	}
	delete(r.m, id)
	return true, nil
}

func strPtr(s string) *string { return &s }

func TestDeviceService_RegisterCreatesThenUpdates(t *testing.T) {
	svc := NewDeviceService(newMemRepo())
	ctx := context.Background()

	d, created, err := svc.Register(ctx, "u1", domain.Registration{PushToken: "tok", Platform: strPtr("ios"), Locale: strPtr("en-US")})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !created {
		t.Error("first registration should create")
	}

	d2, created, err := svc.Register(ctx, "u1", domain.Registration{PushToken: "tok", DeviceModel: strPtr("iPhone 15")})
	if err != nil {
		t.Fatalf("Register again: %v", err)
	}
	if created {
		t.Error("second registration should update")
	}
	if d2.ID != d.ID {
		t.Errorf("updated id = %q, want %q", d2.ID, d.ID)
	}
	if d2.Platform == nil || *d2.Platform != "ios" {
		t.Errorf("Platform = %v, want ios kept", d2.Platform)
	}
	if d2.DeviceModel == nil || *d2.DeviceModel != "iPhone 15" {
		t.Errorf("DeviceModel = %v, want iPhone 15", d2.DeviceModel)
	}

	// Same token, other user: separate device.
	if _, created, _ := svc.Register(ctx, "u2", domain.Registration{PushToken: "tok"}); !created {
		t.Error("same token for another user should create")
	}
}

func TestDeviceService_RegisterRace(t *testing.T) {
	repo := newMemRepo()
	repo.raceOnCreate = true
	svc := NewDeviceService(repo)

	d, created, err := svc.Register(context.Background(), "u1", domain.Registration{PushToken: "tok", Locale: strPtr("ro")})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created || d.ID != "winner" {
		t.Errorf("got (%q, created=%v), want the concurrent winner updated", d.ID, created)
	}
}

func TestDeviceService_ListAndDelete(t *testing.T) {
	svc := NewDeviceService(newMemRepo())
	ctx := context.Background()

	list, err := svc.List(ctx, "u1")
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("List empty = (%v, %v), want empty slice", list, err)
	}

	d, _, _ := svc.Register(ctx, "u1", domain.Registration{PushToken: "tok"})
	if err := svc.Delete(ctx, "u2", d.ID); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("delete by other user: want ErrDeviceNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", d.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "u1", d.ID); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("second delete: want ErrDeviceNotFound, got %v", err)
	}
}
