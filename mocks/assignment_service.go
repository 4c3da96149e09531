package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// MockAssignmentService is a mock implementation of service.AssignmentService.
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) AssignDocumentToDepartment(ctx context.Context, input service.AssignDepartmentInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockAssignmentService) RemoveDepartmentFromDocument(ctx context.Context, docID, deptID uuid.UUID) error {
	args := m.Called(ctx, docID, deptID)
	return args.Error(0)
}

func (m *MockAssignmentService) GetDepartmentsByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DepartmentAssignment, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentAssignment), args.Error(1)
}

func (m *MockAssignmentService) GetPrimaryDepartmentForDocument(ctx context.Context, docID uuid.UUID) (*domain.Department, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockAssignmentService) GetCollaboratingDepartmentsForDocument(ctx context.Context, docID uuid.UUID) ([]domain.Department, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}
