package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// CreateDepartmentInput carries the parameters for creating a department.
type CreateDepartmentInput struct {
	Name     string
	Code     string
	ParentID *uuid.UUID
}

// UpdateDepartmentInput carries the mutable department fields. Nil pointers
// mean "leave unchanged".
type UpdateDepartmentInput struct {
	Name     *string
	Code     *string
	ParentID *uuid.UUID
}

// DepartmentService owns the department hierarchy.
type DepartmentService interface {
	CreateDepartment(ctx context.Context, input CreateDepartmentInput) (*domain.Department, error)
	GetDepartment(ctx context.Context, deptID uuid.UUID) (*domain.Department, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]domain.Department, error)
	UpdateDepartment(ctx context.Context, deptID uuid.UUID, input UpdateDepartmentInput) (*domain.Department, error)
	DeleteDepartment(ctx context.Context, deptID uuid.UUID) error
}

type departmentService struct {
	departmentRepo port.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(departmentRepo port.DepartmentRepository) DepartmentService {
	return &departmentService{departmentRepo: departmentRepo}
}

func (s *departmentService) CreateDepartment(ctx context.Context, input CreateDepartmentInput) (*domain.Department, error) {
	// An unknown parent id is a hard precondition failure, not a soft skip.
	if input.ParentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, domain.ErrDepartmentNotFound) {
				return nil, fmt.Errorf("departmentService.CreateDepartment: %w", domain.ErrParentDepartmentNotFound)
			}
			return nil, fmt.Errorf("departmentService.CreateDepartment: %w", err)
		}
	}

	dept := &domain.Department{
		ID:       uuid.New(),
		Name:     input.Name,
		Code:     input.Code,
		ParentID: input.ParentID,
	}
	if err := s.departmentRepo.Create(ctx, dept); err != nil {
		return nil, fmt.Errorf("departmentService.CreateDepartment: %w", err)
	}
	return dept, nil
}

func (s *departmentService) GetDepartment(ctx context.Context, deptID uuid.UUID) (*domain.Department, error) {
	dept, err := s.departmentRepo.GetByID(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("departmentService.GetDepartment: %w", err)
	}
	return dept, nil
}

func (s *departmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("departmentService.ListDepartments: %w", err)
	}
	return depts, nil
}

func (s *departmentService) ListChildren(ctx context.Context, parentID uuid.UUID) ([]domain.Department, error) {
	depts, err := s.departmentRepo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("departmentService.ListChildren: %w", err)
	}
	return depts, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, deptID uuid.UUID, input UpdateDepartmentInput) (*domain.Department, error) {
	dept, err := s.departmentRepo.GetByID(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("departmentService.UpdateDepartment: %w", err)
	}

	if input.ParentID != nil {
		if *input.ParentID == deptID {
			return nil, fmt.Errorf("departmentService.UpdateDepartment: department cannot be its own parent")
		}
		if _, err := s.departmentRepo.GetByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, domain.ErrDepartmentNotFound) {
				return nil, fmt.Errorf("departmentService.UpdateDepartment: %w", domain.ErrParentDepartmentNotFound)
			}
			return nil, fmt.Errorf("departmentService.UpdateDepartment: %w", err)
		}
		dept.ParentID = input.ParentID
	}
	if input.Name != nil {
		dept.Name = *input.Name
	}
	if input.Code != nil {
		dept.Code = *input.Code
	}

	if err := s.departmentRepo.Update(ctx, dept); err != nil {
		return nil, fmt.Errorf("departmentService.UpdateDepartment: %w", err)
	}
	return dept, nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, deptID uuid.UUID) error {
	children, err := s.departmentRepo.ListChildren(ctx, deptID)
	if err != nil {
		return fmt.Errorf("departmentService.DeleteDepartment: %w", err)
	}
	if len(children) > 0 {
		return fmt.Errorf("departmentService.DeleteDepartment: department has %d child departments", len(children))
	}
	if err := s.departmentRepo.Delete(ctx, deptID); err != nil {
		return fmt.Errorf("departmentService.DeleteDepartment: %w", err)
	}
	return nil
}
