package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/service"
	"docflow/mocks"
)

func TestCreateDepartment_WithParent(t *testing.T) {
	departmentRepo := new(mocks.MockDepartmentRepo)
	svc := service.NewDepartmentService(departmentRepo)
	parent := &domain.Department{ID: uuid.New(), Name: "Directorate"}

	departmentRepo.On("GetByID", mock.Anything, parent.ID).Return(parent, nil)
	departmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Department")).Return(nil)

	dept, err := svc.CreateDepartment(context.Background(), service.CreateDepartmentInput{
		Name:     "Planning",
		Code:     "PLN",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, dept.ParentID)
	assert.Equal(t, parent.ID, *dept.ParentID)
}

func TestCreateDepartment_UnknownParent(t *testing.T) {
	departmentRepo := new(mocks.MockDepartmentRepo)
	svc := service.NewDepartmentService(departmentRepo)
	parentID := uuid.New()

	departmentRepo.On("GetByID", mock.Anything, parentID).Return(nil, domain.ErrDepartmentNotFound)

	_, err := svc.CreateDepartment(context.Background(), service.CreateDepartmentInput{
		Name:     "Planning",
		ParentID: &parentID,
	})
	assert.ErrorIs(t, err, domain.ErrParentDepartmentNotFound)
	departmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateDepartment_RejectsSelfParent(t *testing.T) {
	departmentRepo := new(mocks.MockDepartmentRepo)
	svc := service.NewDepartmentService(departmentRepo)
	dept := &domain.Department{ID: uuid.New(), Name: "Planning"}

	departmentRepo.On("GetByID", mock.Anything, dept.ID).Return(dept, nil)

	_, err := svc.UpdateDepartment(context.Background(), dept.ID, service.UpdateDepartmentInput{
		ParentID: &dept.ID,
	})
	assert.Error(t, err)
	departmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteDepartment_RefusesWithChildren(t *testing.T) {
	departmentRepo := new(mocks.MockDepartmentRepo)
	svc := service.NewDepartmentService(departmentRepo)
	deptID := uuid.New()

	departmentRepo.On("ListChildren", mock.Anything, deptID).
		Return([]domain.Department{{ID: uuid.New(), Name: "Child"}}, nil)

	err := svc.DeleteDepartment(context.Background(), deptID)
	assert.Error(t, err)
	departmentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteDepartment_LeafIsDeleted(t *testing.T) {
	departmentRepo := new(mocks.MockDepartmentRepo)
	svc := service.NewDepartmentService(departmentRepo)
	deptID := uuid.New()

	departmentRepo.On("ListChildren", mock.Anything, deptID).Return([]domain.Department{}, nil)
	departmentRepo.On("Delete", mock.Anything, deptID).Return(nil).Once()

	err := svc.DeleteDepartment(context.Background(), deptID)
	assert.NoError(t, err)
	departmentRepo.AssertExpectations(t)
}
