package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// DepartmentRepository defines the contract for the department hierarchy.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, deptID uuid.UUID) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, deptID uuid.UUID) error
}

// AssignmentRepository defines the contract for document-department
// assignment rows.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.DepartmentAssignment) error
	Update(ctx context.Context, a *domain.DepartmentAssignment) error
	GetByDocumentAndDepartment(ctx context.Context, docID, deptID uuid.UUID) (*domain.DepartmentAssignment, error)
	ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DepartmentAssignment, error)
	Delete(ctx context.Context, docID, deptID uuid.UUID) error
}
