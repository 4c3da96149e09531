package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// ClassificationService maps a document's absolute status plus an actor's
// role group and personal history into the role-relative tracking label used
// by "my work queue" displays. It is read-only: it never writes state and has
// no side effects.
type ClassificationService interface {
	ClassifyForUser(ctx context.Context, docID, userID uuid.UUID) (domain.TrackingStatus, error)
}

type classificationService struct {
	documentRepo port.DocumentRepository
	historyRepo  port.HistoryRepository
	userRepo     port.UserRepository
}

// NewClassificationService creates a new ClassificationService.
func NewClassificationService(
	documentRepo port.DocumentRepository,
	historyRepo port.HistoryRepository,
	userRepo port.UserRepository,
) ClassificationService {
	return &classificationService{
		documentRepo: documentRepo,
		historyRepo:  historyRepo,
		userRepo:     userRepo,
	}
}

func (s *classificationService) ClassifyForUser(ctx context.Context, docID, userID uuid.UUID) (domain.TrackingStatus, error) {
	doc, err := s.documentRepo.GetByID(ctx, docID)
	if err != nil {
		return "", fmt.Errorf("classificationService.ClassifyForUser: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("classificationService.ClassifyForUser: %w", err)
	}

	lastPersonal, err := s.lastPersonalStatus(ctx, docID, userID)
	if err != nil {
		return "", fmt.Errorf("classificationService.ClassifyForUser: %w", err)
	}

	switch domain.ResolveRoleGroup(user.Roles) {
	case domain.RoleGroupClerk:
		return s.classifyClerk(ctx, doc)
	case domain.RoleGroupStaff:
		return classifyStaff(doc, lastPersonal), nil
	case domain.RoleGroupBureauLeader:
		return classifyBureauLeader(doc, lastPersonal), nil
	case domain.RoleGroupDepartmentLeader:
		return classifyDepartmentLeader(doc, lastPersonal), nil
	default:
		return domain.TrackingNotProcessed, nil
	}
}

// lastPersonalStatus returns the new-status recorded on the user's most
// recent history entry for the document, or "" when the user never acted on
// it.
func (s *classificationService) lastPersonalStatus(ctx context.Context, docID, userID uuid.UUID) (domain.DocumentStatus, error) {
	entry, err := s.historyRepo.GetLastByDocumentAndUser(ctx, docID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	status, err := domain.StatusFromCode(entry.NewStatus)
	if err != nil {
		// An unrecognized code means the row predates the current taxonomy;
		// treat it as no personal action rather than failing the display.
		return "", nil
	}
	return status, nil
}

// classifyClerk: the clerk's work is registration and distribution. A draft
// or freshly registered document is in their hands; once the document has
// ever been distributed their part is done.
func (s *classificationService) classifyClerk(ctx context.Context, doc *domain.Document) (domain.TrackingStatus, error) {
	distributed, err := s.historyRepo.ExistsByDocumentAndStatus(ctx, doc.ID, domain.StatusDistributed)
	if err != nil {
		return "", err
	}
	if distributed {
		return domain.TrackingProcessed, nil
	}
	switch doc.Status {
	case domain.StatusDraft, domain.StatusRegistered:
		return domain.TrackingInProcess, nil
	}
	return domain.TrackingNotProcessed, nil
}

func classifyStaff(doc *domain.Document, lastPersonal domain.DocumentStatus) domain.TrackingStatus {
	switch lastPersonal {
	case domain.StatusSpecialistSubmitted, domain.StatusPendingApproval:
		return domain.TrackingProcessed
	}
	if doc.Status == domain.StatusSpecialistProcessing && lastPersonal == domain.StatusSpecialistProcessing {
		return domain.TrackingInProcess
	}
	return domain.TrackingNotProcessed
}

func classifyBureauLeader(doc *domain.Document, lastPersonal domain.DocumentStatus) domain.TrackingStatus {
	switch lastPersonal {
	case domain.StatusLeaderApproved, domain.StatusLeaderCommented, domain.StatusRejected:
		return domain.TrackingProcessed
	}
	if doc.Status == domain.StatusLeaderReviewing && lastPersonal == domain.StatusLeaderReviewing {
		return domain.TrackingInProcess
	}
	return domain.TrackingNotProcessed
}

func classifyDepartmentLeader(doc *domain.Document, lastPersonal domain.DocumentStatus) domain.TrackingStatus {
	switch lastPersonal {
	case domain.StatusHeaderDeptApproved, domain.StatusHeaderDeptCommented, domain.StatusRejected:
		return domain.TrackingProcessed
	}
	if doc.Status == domain.StatusHeaderDeptReviewing && lastPersonal == domain.StatusHeaderDeptReviewing {
		return domain.TrackingInProcess
	}
	return domain.TrackingNotProcessed
}
