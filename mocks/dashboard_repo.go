package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// MockDashboardRepo is a mock implementation of port.DashboardRepository.
type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) CountByStatus(ctx context.Context, scope port.DashboardScope) ([]domain.StatusCount, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

func (m *MockDashboardRepo) CountByDepartment(ctx context.Context) ([]domain.DepartmentCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentCount), args.Error(1)
}

func (m *MockDashboardRepo) ListOverdue(ctx context.Context, scope port.DashboardScope, now time.Time, limit int) ([]domain.Document, error) {
	args := m.Called(ctx, scope, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDashboardRepo) ListUpcoming(ctx context.Context, scope port.DashboardScope, now time.Time, window time.Duration, limit int) ([]domain.Document, error) {
	args := m.Called(ctx, scope, now, window, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}
