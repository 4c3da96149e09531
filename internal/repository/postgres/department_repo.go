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

type departmentRepo struct {
	db *sqlx.DB
}

// NewDepartmentRepo creates a new PostgreSQL-backed DepartmentRepository.
func NewDepartmentRepo(db *sqlx.DB) port.DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *domain.Department) error {
	now := time.Now().UTC()
	dept.CreatedAt = now
	dept.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO departments (id, name, code, parent_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		dept.ID, dept.Name, dept.Code, dept.ParentID, dept.CreatedAt, dept.UpdatedAt)
	if err != nil {
		return fmt.Errorf("departmentRepo.Create: %w", err)
	}
	return nil
}

func (r *departmentRepo) GetByID(ctx context.Context, deptID uuid.UUID) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.GetContext(ctx, &dept,
		"SELECT * FROM departments WHERE id = $1", deptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("departmentRepo.GetByID: %w", err)
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	var depts []domain.Department
	err := r.db.SelectContext(ctx, &depts,
		"SELECT * FROM departments ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("departmentRepo.List: %w", err)
	}
	return depts, nil
}

func (r *departmentRepo) ListChildren(ctx context.Context, parentID uuid.UUID) ([]domain.Department, error) {
	var depts []domain.Department
	err := r.db.SelectContext(ctx, &depts,
		"SELECT * FROM departments WHERE parent_id = $1 ORDER BY name ASC", parentID)
	if err != nil {
		return nil, fmt.Errorf("departmentRepo.ListChildren: %w", err)
	}
	return depts, nil
}

func (r *departmentRepo) Update(ctx context.Context, dept *domain.Department) error {
	dept.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE departments SET name = $1, code = $2, parent_id = $3, updated_at = $4
		 WHERE id = $5`,
		dept.Name, dept.Code, dept.ParentID, dept.UpdatedAt, dept.ID)
	if err != nil {
		return fmt.Errorf("departmentRepo.Update: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepo) Delete(ctx context.Context, deptID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM departments WHERE id = $1", deptID)
	if err != nil {
		return fmt.Errorf("departmentRepo.Delete: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}
