package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"themepark/internal/domain/entities"
	"themepark/internal/repository"
)

// EmployeeRepository stores copies of employees, like RideRepository.
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]*entities.Employee
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		employees: make(map[string]*entities.Employee),
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *entities.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.employees[employee.ID()] = employee.Clone()
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*entities.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	employee, exists := r.employees[id]
	if !exists {
		return nil, repository.ErrEmployeeNotFound
	}
	return employee.Clone(), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *entities.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.employees[employee.ID()]; !exists {
		return repository.ErrEmployeeNotFound
	}
	r.employees[employee.ID()] = employee.Clone()
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.employees[id]; !exists {
		return repository.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*entities.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	employees := make([]*entities.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		employees = append(employees, e.Clone())
	}
	slices.SortFunc(employees, func(a, b *entities.Employee) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return employees, nil
}
