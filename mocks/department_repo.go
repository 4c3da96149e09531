package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockDepartmentRepo is a mock implementation of port.DepartmentRepository.
type MockDepartmentRepo struct {
	mock.Mock
}

func (m *MockDepartmentRepo) Create(ctx context.Context, dept *domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockDepartmentRepo) GetByID(ctx context.Context, deptID uuid.UUID) (*domain.Department, error) {
	args := m.Called(ctx, deptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockDepartmentRepo) ListChildren(ctx context.Context, parentID uuid.UUID) ([]domain.Department, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockDepartmentRepo) Update(ctx context.Context, dept *domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockDepartmentRepo) Delete(ctx context.Context, deptID uuid.UUID) error {
	args := m.Called(ctx, deptID)
	return args.Error(0)
}

// MockAssignmentRepo is a mock implementation of port.AssignmentRepository.
type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, a *domain.DepartmentAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepo) Update(ctx context.Context, a *domain.DepartmentAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepo) GetByDocumentAndDepartment(ctx context.Context, docID, deptID uuid.UUID) (*domain.DepartmentAssignment, error) {
	args := m.Called(ctx, docID, deptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepartmentAssignment), args.Error(1)
}

func (m *MockAssignmentRepo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DepartmentAssignment, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentAssignment), args.Error(1)
}

func (m *MockAssignmentRepo) Delete(ctx context.Context, docID, deptID uuid.UUID) error {
	args := m.Called(ctx, docID, deptID)
	return args.Error(0)
}
