package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// DashboardScope narrows dashboard aggregation. Nil fields mean org-wide.
type DashboardScope struct {
	DepartmentID *uuid.UUID
	UserID       *uuid.UUID
}

// DashboardRepository provides read-only reporting aggregates.
type DashboardRepository interface {
	CountByStatus(ctx context.Context, scope DashboardScope) ([]domain.StatusCount, error)
	CountByDepartment(ctx context.Context) ([]domain.DepartmentCount, error)
	// ListOverdue returns unfinished documents whose process deadline passed
	// before now, oldest deadline first.
	ListOverdue(ctx context.Context, scope DashboardScope, now time.Time, limit int) ([]domain.Document, error)
	// ListUpcoming returns unfinished documents with a deadline inside
	// [now, now+window], soonest first.
	ListUpcoming(ctx context.Context, scope DashboardScope, now time.Time, window time.Duration, limit int) ([]domain.Document, error)
}
