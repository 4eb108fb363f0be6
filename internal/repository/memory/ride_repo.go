package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"themepark/internal/domain/entities"
	"themepark/internal/repository"
)

// RideRepository stores rides in memory. Like the Redis store it keeps
// snapshots: Create and Update store a deep copy, and every read returns a
// fresh copy, so a ride held by one caller is never shared with another.
type RideRepository struct {
	mu    sync.RWMutex
	rides map[string]*entities.Ride
}

var _ repository.RideRepository = (*RideRepository)(nil)

func NewRideRepository() *RideRepository {
	return &RideRepository{
		rides: make(map[string]*entities.Ride),
	}
}

func (r *RideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rides[ride.ID()] = ride.Clone()
	return nil
}

func (r *RideRepository) GetByID(ctx context.Context, id string) (*entities.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, exists := r.rides[id]
	if !exists {
		return nil, repository.ErrRideNotFound
	}
	return ride.Clone(), nil
}

func (r *RideRepository) Update(ctx context.Context, ride *entities.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rides[ride.ID()]; !exists {
		return repository.ErrRideNotFound
	}
	r.rides[ride.ID()] = ride.Clone()
	return nil
}

func (r *RideRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rides[id]; !exists {
		return repository.ErrRideNotFound
	}
	delete(r.rides, id)
	return nil
}

// List returns every ride ordered by name, then id. Map iteration order is
// random in Go, so the sort keeps API listings stable.
func (r *RideRepository) List(ctx context.Context) ([]*entities.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rides := make([]*entities.Ride, 0, len(r.rides))
	for _, ride := range r.rides {
		rides = append(rides, ride.Clone())
	}
	slices.SortFunc(rides, func(a, b *entities.Ride) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})
	return rides, nil
}
