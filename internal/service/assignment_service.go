package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// AssignDepartmentInput carries the parameters for assigning a department to
// a document.
type AssignDepartmentInput struct {
	DocumentID   uuid.UUID
	DepartmentID uuid.UUID
	ActorID      uuid.UUID
	IsPrimary    bool
	Comments     string
	DueDate      *time.Time
}

// AssignmentService maintains the document-department assignment list and its
// primary-exclusivity invariant: at most one primary among departments that
// are not in an ancestor/descendant relationship with each other.
type AssignmentService interface {
	AssignDocumentToDepartment(ctx context.Context, input AssignDepartmentInput) error
	RemoveDepartmentFromDocument(ctx context.Context, docID, deptID uuid.UUID) error
	GetDepartmentsByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DepartmentAssignment, error)
	GetPrimaryDepartmentForDocument(ctx context.Context, docID uuid.UUID) (*domain.Department, error)
	GetCollaboratingDepartmentsForDocument(ctx context.Context, docID uuid.UUID) ([]domain.Department, error)
}

type assignmentService struct {
	documentRepo   port.DocumentRepository
	departmentRepo port.DepartmentRepository
	assignmentRepo port.AssignmentRepository
	userRepo       port.UserRepository
	historyRepo    port.HistoryRepository
	notifier       port.NotificationSink
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	documentRepo port.DocumentRepository,
	departmentRepo port.DepartmentRepository,
	assignmentRepo port.AssignmentRepository,
	userRepo port.UserRepository,
	historyRepo port.HistoryRepository,
	notifier port.NotificationSink,
) AssignmentService {
	return &assignmentService{
		documentRepo:   documentRepo,
		departmentRepo: departmentRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		historyRepo:    historyRepo,
		notifier:       notifier,
	}
}

func (s *assignmentService) AssignDocumentToDepartment(ctx context.Context, input AssignDepartmentInput) error {
	// Unresolvable ids are a silent no-op, not an error.
	doc, err := s.documentRepo.GetByID(ctx, input.DocumentID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			log.Printf("assignmentService.AssignDocumentToDepartment: document %s not found, skipping", input.DocumentID)
			return nil
		}
		return fmt.Errorf("assignmentService.AssignDocumentToDepartment: %w", err)
	}
	dept, err := s.departmentRepo.GetByID(ctx, input.DepartmentID)
	if err != nil {
		if errors.Is(err, domain.ErrDepartmentNotFound) {
			log.Printf("assignmentService.AssignDocumentToDepartment: department %s not found, skipping", input.DepartmentID)
			return nil
		}
		return fmt.Errorf("assignmentService.AssignDocumentToDepartment: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, input.ActorID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Printf("assignmentService.AssignDocumentToDepartment: actor %s not found, skipping", input.ActorID)
			return nil
		}
		return fmt.Errorf("assignmentService.AssignDocumentToDepartment: %w", err)
	}

	now := time.Now().UTC()

	existing, err := s.assignmentRepo.GetByDocumentAndDepartment(ctx, input.DocumentID, input.DepartmentID)
	switch {
	case err == nil:
		existing.IsPrimary = input.IsPrimary
		existing.AssignedBy = input.ActorID
		existing.AssignedAt = now
		existing.DueDate = input.DueDate
		existing.Comments = input.Comments
		if err := s.assignmentRepo.Update(ctx, existing); err != nil {
			return fmt.Errorf("assignmentService.AssignDocumentToDepartment: %w", err)
		}
	case errors.Is(err, domain.ErrNotFound):
		a := &domain.DepartmentAssignment{
			ID:           uuid.New(),
			DocumentID:   input.DocumentID,
			DepartmentID: input.DepartmentID,
			IsPrimary:    input.IsPrimary,
			AssignedBy:   input.ActorID,
			AssignedAt:   now,
			DueDate:      input.DueDate,
			Comments:     input.Comments,
		}
		if err := s.assignmentRepo.Create(ctx, a); err != nil {
			return fmt.Errorf("assignmentService.AssignDocumentToDepartment: %w", err)
		}
	default:
		return fmt.Errorf("assignmentService.AssignDocumentToDepartment: %w", err)
	}

	if input.IsPrimary {
		if err := s.demoteSiblingPrimaries(ctx, input.DocumentID, input.DepartmentID); err != nil {
			return fmt.Errorf("assignmentService.AssignDocumentToDepartment: %w", err)
		}
	}

	s.audit(ctx, &domain.DocumentHistory{
		DocumentID:     doc.ID,
		Action:         domain.ActionAssignment,
		PreviousStatus: string(doc.Status),
		NewStatus:      string(doc.Status),
		PerformedBy:    input.ActorID,
		Comments:       fmt.Sprintf("assigned department %s (primary=%t)", dept.Name, input.IsPrimary),
	})

	s.notify(ctx, doc.ID, input.ActorID, domain.NotificationAssignment,
		fmt.Sprintf("Document %s assigned to department %s", doc.DocumentNumber, dept.Name))

	return nil
}

// demoteSiblingPrimaries clears the primary flag on every other primary
// assignment whose department is not an ancestor or descendant of the newly
// assigned department.
func (s *assignmentService) demoteSiblingPrimaries(ctx context.Context, docID, newDeptID uuid.UUID) error {
	assignments, err := s.assignmentRepo.ListByDocument(ctx, docID)
	if err != nil {
		return err
	}
	for i := range assignments {
		a := &assignments[i]
		if a.DepartmentID == newDeptID || !a.IsPrimary {
			continue
		}
		related, err := s.isAncestorOrDescendant(ctx, a.DepartmentID, newDeptID)
		if err != nil {
			return err
		}
		if related {
			continue
		}
		a.IsPrimary = false
		if err := s.assignmentRepo.Update(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// isAncestorOrDescendant walks parent pointers from each department toward
// the root, looking for the other one.
func (s *assignmentService) isAncestorOrDescendant(ctx context.Context, a, b uuid.UUID) (bool, error) {
	onPath, err := s.liesOnAncestorPath(ctx, a, b)
	if err != nil || onPath {
		return onPath, err
	}
	return s.liesOnAncestorPath(ctx, b, a)
}

// liesOnAncestorPath reports whether target appears on the parent chain of
// start (start itself excluded).
func (s *assignmentService) liesOnAncestorPath(ctx context.Context, start, target uuid.UUID) (bool, error) {
	current := start
	seen := map[uuid.UUID]bool{current: true}
	for {
		dept, err := s.departmentRepo.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, domain.ErrDepartmentNotFound) {
				return false, nil
			}
			return false, err
		}
		if dept.ParentID == nil {
			return false, nil
		}
		if *dept.ParentID == target {
			return true, nil
		}
		if seen[*dept.ParentID] {
			// Defend against a cycle in the hierarchy data.
			return false, nil
		}
		seen[*dept.ParentID] = true
		current = *dept.ParentID
	}
}

func (s *assignmentService) RemoveDepartmentFromDocument(ctx context.Context, docID, deptID uuid.UUID) error {
	if err := s.assignmentRepo.Delete(ctx, docID, deptID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("assignmentService.RemoveDepartmentFromDocument: %w", err)
	}
	return nil
}

func (s *assignmentService) GetDepartmentsByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DepartmentAssignment, error) {
	assignments, err := s.assignmentRepo.ListByDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("assignmentService.GetDepartmentsByDocument: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) GetPrimaryDepartmentForDocument(ctx context.Context, docID uuid.UUID) (*domain.Department, error) {
	assignments, err := s.assignmentRepo.ListByDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("assignmentService.GetPrimaryDepartmentForDocument: %w", err)
	}
	for _, a := range assignments {
		if a.IsPrimary {
			dept, err := s.departmentRepo.GetByID(ctx, a.DepartmentID)
			if err != nil {
				return nil, fmt.Errorf("assignmentService.GetPrimaryDepartmentForDocument: %w", err)
			}
			return dept, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *assignmentService) GetCollaboratingDepartmentsForDocument(ctx context.Context, docID uuid.UUID) ([]domain.Department, error) {
	assignments, err := s.assignmentRepo.ListByDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("assignmentService.GetCollaboratingDepartmentsForDocument: %w", err)
	}
	var depts []domain.Department
	for _, a := range assignments {
		if a.IsPrimary {
			continue
		}
		dept, err := s.departmentRepo.GetByID(ctx, a.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("assignmentService.GetCollaboratingDepartmentsForDocument: %w", err)
		}
		depts = append(depts, *dept)
	}
	return depts, nil
}

// audit records a history row; failures are logged, never propagated.
func (s *assignmentService) audit(ctx context.Context, entry *domain.DocumentHistory) {
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		log.Printf("assignmentService.audit: failed to record history for document %s: %v", entry.DocumentID, err)
	}
}

// notify delivers a best-effort notification; failures are logged, never
// propagated.
func (s *assignmentService) notify(ctx context.Context, docID, recipientID uuid.UUID, ntype domain.NotificationType, content string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CreateAndSend(ctx, docID, "document", recipientID, ntype, content); err != nil {
		log.Printf("assignmentService.notify: failed to notify %s about document %s: %v", recipientID, docID, err)
	}
}
