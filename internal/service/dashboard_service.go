package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// DashboardService builds role-scoped reporting views. Bureau leadership,
// clerks and admins see the whole organization, department leaders see their
// department, everyone else sees only documents they created or process.
type DashboardService interface {
	GetDashboard(ctx context.Context, actorID uuid.UUID) (*domain.Dashboard, error)
}

type dashboardService struct {
	dashboardRepo port.DashboardRepository
	userRepo      port.UserRepository

	upcomingWindow time.Duration
	listLimit      int
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	dashboardRepo port.DashboardRepository,
	userRepo port.UserRepository,
	upcomingWindow time.Duration,
	listLimit int,
) DashboardService {
	if listLimit <= 0 {
		listLimit = 50
	}
	if upcomingWindow <= 0 {
		upcomingWindow = 7 * 24 * time.Hour
	}
	return &dashboardService{
		dashboardRepo:  dashboardRepo,
		userRepo:       userRepo,
		upcomingWindow: upcomingWindow,
		listLimit:      listLimit,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, actorID uuid.UUID) (*domain.Dashboard, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.GetDashboard: %w", err)
	}

	scope, orgWide := scopeForUser(user)

	byStatus, err := s.dashboardRepo.CountByStatus(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.GetDashboard: %w", err)
	}
	total := 0
	for _, c := range byStatus {
		total += c.Count
	}

	var byDepartment []domain.DepartmentCount
	if orgWide {
		byDepartment, err = s.dashboardRepo.CountByDepartment(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboardService.GetDashboard: %w", err)
		}
	}

	now := time.Now().UTC()
	overdue, err := s.dashboardRepo.ListOverdue(ctx, scope, now, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.GetDashboard: %w", err)
	}
	upcoming, err := s.dashboardRepo.ListUpcoming(ctx, scope, now, s.upcomingWindow, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.GetDashboard: %w", err)
	}

	return &domain.Dashboard{
		TotalDocuments: total,
		ByStatus:       byStatus,
		ByDepartment:   byDepartment,
		Overdue:        overdue,
		Upcoming:       upcoming,
	}, nil
}

// scopeForUser resolves the aggregation scope from the user's role group.
func scopeForUser(user *domain.User) (port.DashboardScope, bool) {
	for _, r := range user.Roles {
		if r == domain.RoleAdmin {
			return port.DashboardScope{}, true
		}
	}
	switch domain.ResolveRoleGroup(user.Roles) {
	case domain.RoleGroupClerk, domain.RoleGroupBureauLeader:
		return port.DashboardScope{}, true
	case domain.RoleGroupDepartmentLeader:
		if user.DepartmentID != nil {
			return port.DashboardScope{DepartmentID: user.DepartmentID}, false
		}
		return port.DashboardScope{}, true
	default:
		uid := user.ID
		return port.DashboardScope{UserID: &uid}, false
	}
}
