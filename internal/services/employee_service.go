package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"themepark/internal/domain/entities"
	"themepark/internal/repository"
	"themepark/pkg/utils"
)

type RegisterEmployeeRequest struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Position   string `json:"position"`
	EmployeeID string `json:"employee_id"`
}

// RegisterEmployee stores a new employee under a generated id. An empty
// EmployeeID defaults to that id.
func (s *RideService) RegisterEmployee(ctx context.Context, req RegisterEmployeeRequest) (*entities.Employee, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, entities.ErrBlankName
	}
	id := utils.NewEmployeeID()
	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = id
	}

	employee, err := entities.NewEmployee(req.Name, req.Age, id, req.Position, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	s.narrator.EmployeeRegistered(employee)
	return employee, nil
}

func (s *RideService) GetEmployee(ctx context.Context, id string) (*entities.Employee, error) {
	return s.getEmployee(ctx, id)
}

func (s *RideService) ListEmployees(ctx context.Context) ([]*entities.Employee, error) {
	return s.employees.List(ctx)
}

func (s *RideService) getEmployee(ctx context.Context, id string) (*entities.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
		}
		return nil, err
	}
	return employee, nil
}
