// Package repository declares the storage contracts the service layer depends
// on. memory/ keeps entities in process; redis/ stores JSON snapshots in Redis.
package repository

import (
	"context"
	"errors"

	"themepark/internal/domain/entities"
)

var (
	ErrRideNotFound     = errors.New("ride not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)

type RideRepository interface {
	Create(ctx context.Context, ride *entities.Ride) error
	GetByID(ctx context.Context, id string) (*entities.Ride, error)
	Update(ctx context.Context, ride *entities.Ride) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Ride, error)
}

// EmployeeRepository stores employees keyed by their person id.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entities.Employee) error
	GetByID(ctx context.Context, id string) (*entities.Employee, error)
	Update(ctx context.Context, employee *entities.Employee) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Employee, error)
}
