package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type assignmentRepo struct {
	db *sqlx.DB
}

// NewAssignmentRepo creates a new PostgreSQL-backed AssignmentRepository.
func NewAssignmentRepo(db *sqlx.DB) port.AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *domain.DepartmentAssignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO department_assignments (
			id, document_id, department_id, is_primary,
			assigned_by, assigned_at, due_date, comments
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.DocumentID, a.DepartmentID, a.IsPrimary,
		a.AssignedBy, a.AssignedAt, a.DueDate, a.Comments)
	if err != nil {
		return fmt.Errorf("assignmentRepo.Create: %w", err)
	}
	return nil
}

func (r *assignmentRepo) Update(ctx context.Context, a *domain.DepartmentAssignment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE department_assignments SET
			is_primary = $1, assigned_by = $2, assigned_at = $3,
			due_date = $4, comments = $5
		 WHERE document_id = $6 AND department_id = $7`,
		a.IsPrimary, a.AssignedBy, a.AssignedAt,
		a.DueDate, a.Comments, a.DocumentID, a.DepartmentID)
	if err != nil {
		return fmt.Errorf("assignmentRepo.Update: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) GetByDocumentAndDepartment(ctx context.Context, docID, deptID uuid.UUID) (*domain.DepartmentAssignment, error) {
	var a domain.DepartmentAssignment
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM department_assignments WHERE document_id = $1 AND department_id = $2",
		docID, deptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("assignmentRepo.GetByDocumentAndDepartment: %w", err)
	}
	return &a, nil
}

func (r *assignmentRepo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DepartmentAssignment, error) {
	var out []domain.DepartmentAssignment
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM department_assignments WHERE document_id = $1 ORDER BY assigned_at ASC",
		docID)
	if err != nil {
		return nil, fmt.Errorf("assignmentRepo.ListByDocument: %w", err)
	}
	return out, nil
}

func (r *assignmentRepo) Delete(ctx context.Context, docID, deptID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM department_assignments WHERE document_id = $1 AND department_id = $2",
		docID, deptID)
	if err != nil {
		return fmt.Errorf("assignmentRepo.Delete: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
