package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type dashboardRepo struct {
	db *sqlx.DB
}

// NewDashboardRepo creates a new PostgreSQL-backed DashboardRepository.
func NewDashboardRepo(db *sqlx.DB) port.DashboardRepository {
	return &dashboardRepo{db: db}
}

// finishedStatuses are excluded from deadline reporting. A completed,
// published or archived document can no longer be overdue.
var finishedStatuses = []string{
	string(domain.StatusCompleted),
	string(domain.StatusPublished),
	string(domain.StatusArchived),
}

// scopeClause appends scope restrictions to a WHERE clause, continuing
// placeholder numbering from the given offset.
func scopeClause(scope port.DashboardScope, n int) (string, []interface{}) {
	var clause string
	var args []interface{}
	if scope.DepartmentID != nil {
		clause += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM department_assignments da WHERE da.document_id = d.id AND da.department_id = $%d)", n)
		args = append(args, *scope.DepartmentID)
		n++
	}
	if scope.UserID != nil {
		clause += fmt.Sprintf(" AND (d.created_by = $%d OR d.primary_processor = $%d)", n, n)
		args = append(args, *scope.UserID)
		n++
	}
	return clause, args
}

func (r *dashboardRepo) CountByStatus(ctx context.Context, scope port.DashboardScope) ([]domain.StatusCount, error) {
	clause, args := scopeClause(scope, 1)
	query := `SELECT d.status AS status, COUNT(*) AS count
		FROM documents d
		WHERE 1 = 1` + clause + `
		GROUP BY d.status
		ORDER BY count DESC`

	var counts []domain.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("dashboardRepo.CountByStatus: %w", err)
	}
	return counts, nil
}

func (r *dashboardRepo) CountByDepartment(ctx context.Context) ([]domain.DepartmentCount, error) {
	query := `SELECT dep.id AS department_id, dep.name AS department_name, COUNT(da.document_id) AS count
		FROM departments dep
		LEFT JOIN department_assignments da ON da.department_id = dep.id
		GROUP BY dep.id, dep.name
		ORDER BY count DESC`

	var counts []domain.DepartmentCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("dashboardRepo.CountByDepartment: %w", err)
	}
	return counts, nil
}

func (r *dashboardRepo) ListOverdue(ctx context.Context, scope port.DashboardScope, now time.Time, limit int) ([]domain.Document, error) {
	clause, scopeArgs := scopeClause(scope, 3)
	query := `SELECT d.* FROM documents d
		WHERE d.process_deadline IS NOT NULL
		  AND d.process_deadline < $1
		  AND NOT (d.status = ANY($2))` + clause + `
		ORDER BY d.process_deadline ASC
		LIMIT $` + fmt.Sprint(3+len(scopeArgs))

	args := append([]interface{}{now, pq.Array(finishedStatuses)}, scopeArgs...)
	args = append(args, limit)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("dashboardRepo.ListOverdue: %w", err)
	}
	return docs, nil
}

func (r *dashboardRepo) ListUpcoming(ctx context.Context, scope port.DashboardScope, now time.Time, window time.Duration, limit int) ([]domain.Document, error) {
	clause, scopeArgs := scopeClause(scope, 4)
	query := `SELECT d.* FROM documents d
		WHERE d.process_deadline IS NOT NULL
		  AND d.process_deadline >= $1
		  AND d.process_deadline <= $2
		  AND NOT (d.status = ANY($3))` + clause + `
		ORDER BY d.process_deadline ASC
		LIMIT $` + fmt.Sprint(4+len(scopeArgs))

	args := append([]interface{}{now, now.Add(window), pq.Array(finishedStatuses)}, scopeArgs...)
	args = append(args, limit)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("dashboardRepo.ListUpcoming: %w", err)
	}
	return docs, nil
}
