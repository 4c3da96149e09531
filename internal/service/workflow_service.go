package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// ChangeStatusInput carries the parameters for a status transition.
type ChangeStatusInput struct {
	DocumentID    uuid.UUID
	NewStatus     domain.DocumentStatus
	ActorID       uuid.UUID
	Comments      string
	AttachmentKey string
}

// DistributeInput carries the parameters for distributing a registered
// document to its processing departments.
type DistributeInput struct {
	DocumentID         uuid.UUID
	PrimaryDeptID      uuid.UUID
	CollaboratingDepts []uuid.UUID
	ActorID            uuid.UUID
	Comments           string
}

// FeedbackInput carries the parameters for an attachment-bearing feedback
// operation.
type FeedbackInput struct {
	DocumentID    uuid.UUID
	ActorID       uuid.UUID
	ActorRoles    []string
	Comments      string
	AttachmentKey string
}

// WorkflowService enforces legal status transitions, records every transition
// in the audit trail, and owns the transition side effects (notification and
// courtesy email dispatch). It is the only writer of the status column.
type WorkflowService interface {
	CanChangeStatus(ctx context.Context, docID uuid.UUID, target domain.DocumentStatus) (bool, error)
	ChangeDocumentStatus(ctx context.Context, input ChangeStatusInput) (*domain.Document, error)

	RegisterIncomingDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	DistributeDocument(ctx context.Context, input DistributeInput) (*domain.Document, error)
	AssignToSpecialist(ctx context.Context, docID, specialistID, actorID uuid.UUID, comments string) (*domain.Document, error)
	SubmitSpecialistWork(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	ForwardToLeadership(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	ApproveDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	ApproveHeaderDepartment(ctx context.Context, docID, deptID, actorID uuid.UUID, comments string) (*domain.Document, error)
	RejectForFormatCorrection(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	MarkFormatCorrected(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	CompleteDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	PublishOutgoingDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	RejectDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)
	ArchiveDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error)

	ProvideDocumentFeedbackWithAttachment(ctx context.Context, input FeedbackInput) (*domain.Document, error)
	CommentHeaderDepartmentWithAttachment(ctx context.Context, input FeedbackInput) (*domain.Document, error)
	RejectDocumentWithAttachment(ctx context.Context, input FeedbackInput) (*domain.Document, error)

	IsLeader(roles []string) bool
	IsDepartmentHead(roles []string) bool
}

type workflowService struct {
	documentRepo     port.DocumentRepository
	historyRepo      port.HistoryRepository
	departmentRepo   port.DepartmentRepository
	relationshipRepo port.RelationshipRepository
	userRepo         port.UserRepository
	assignments      AssignmentService
	notifier         port.NotificationSink
	emailSender      port.EmailSender
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(
	documentRepo port.DocumentRepository,
	historyRepo port.HistoryRepository,
	departmentRepo port.DepartmentRepository,
	relationshipRepo port.RelationshipRepository,
	userRepo port.UserRepository,
	assignments AssignmentService,
	notifier port.NotificationSink,
	emailSender port.EmailSender,
) WorkflowService {
	return &workflowService{
		documentRepo:     documentRepo,
		historyRepo:      historyRepo,
		departmentRepo:   departmentRepo,
		relationshipRepo: relationshipRepo,
		userRepo:         userRepo,
		assignments:      assignments,
		notifier:         notifier,
		emailSender:      emailSender,
	}
}

func (s *workflowService) CanChangeStatus(ctx context.Context, docID uuid.UUID, target domain.DocumentStatus) (bool, error) {
	doc, err := s.documentRepo.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("workflowService.CanChangeStatus: %w", err)
	}
	return domain.CanTransition(doc.Status, target), nil
}

func (s *workflowService) ChangeDocumentStatus(ctx context.Context, input ChangeStatusInput) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("workflowService.ChangeDocumentStatus: %w", err)
	}

	if !domain.CanTransition(doc.Status, input.NewStatus) {
		return nil, fmt.Errorf("workflowService.ChangeDocumentStatus: %s -> %s: %w",
			doc.Status, input.NewStatus, domain.ErrInvalidTransition)
	}

	previous := doc.Status
	doc.Status = input.NewStatus
	if err := s.documentRepo.UpdateStatus(ctx, doc); err != nil {
		return nil, fmt.Errorf("workflowService.ChangeDocumentStatus: %w", err)
	}

	s.audit(ctx, &domain.DocumentHistory{
		DocumentID:     doc.ID,
		Action:         domain.ActionStatusChange,
		PreviousStatus: string(previous),
		NewStatus:      string(input.NewStatus),
		PerformedBy:    input.ActorID,
		Comments:       input.Comments,
		AttachmentKey:  input.AttachmentKey,
	})

	s.notify(ctx, doc.ID, input.ActorID, domain.NotificationStatusChange,
		fmt.Sprintf("Document %s moved from %s to %s",
			doc.DocumentNumber, previous.DisplayName(), input.NewStatus.DisplayName()))

	return doc, nil
}

func (s *workflowService) RegisterIncomingDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusRegistered,
		ActorID:    actorID,
		Comments:   comments,
	})
}

func (s *workflowService) DistributeDocument(ctx context.Context, input DistributeInput) (*domain.Document, error) {
	doc, err := s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: input.DocumentID,
		NewStatus:  domain.StatusDistributed,
		ActorID:    input.ActorID,
		Comments:   input.Comments,
	})
	if err != nil {
		return nil, err
	}

	if err := s.assignments.AssignDocumentToDepartment(ctx, AssignDepartmentInput{
		DocumentID:   input.DocumentID,
		DepartmentID: input.PrimaryDeptID,
		ActorID:      input.ActorID,
		IsPrimary:    true,
		Comments:     input.Comments,
	}); err != nil {
		return nil, fmt.Errorf("workflowService.DistributeDocument: %w", err)
	}
	for _, deptID := range input.CollaboratingDepts {
		if err := s.assignments.AssignDocumentToDepartment(ctx, AssignDepartmentInput{
			DocumentID:   input.DocumentID,
			DepartmentID: deptID,
			ActorID:      input.ActorID,
			IsPrimary:    false,
			Comments:     input.Comments,
		}); err != nil {
			return nil, fmt.Errorf("workflowService.DistributeDocument: %w", err)
		}
	}
	return doc, nil
}

func (s *workflowService) AssignToSpecialist(ctx context.Context, docID, specialistID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	doc, err := s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusSpecialistProcessing,
		ActorID:    actorID,
		Comments:   comments,
	})
	if err != nil {
		return nil, err
	}
	if err := s.documentRepo.UpdatePrimaryProcessor(ctx, docID, &specialistID); err != nil {
		return nil, fmt.Errorf("workflowService.AssignToSpecialist: %w", err)
	}
	doc.PrimaryProcessor = &specialistID

	s.notify(ctx, docID, specialistID, domain.NotificationAssignment,
		fmt.Sprintf("Document %s assigned to you for processing", doc.DocumentNumber))
	return doc, nil
}

func (s *workflowService) SubmitSpecialistWork(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusSpecialistSubmitted,
		ActorID:    actorID,
		Comments:   comments,
	})
}

func (s *workflowService) ForwardToLeadership(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusLeaderReviewing,
		ActorID:    actorID,
		Comments:   comments,
	})
}

func (s *workflowService) ApproveDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusLeaderApproved,
		ActorID:    actorID,
		Comments:   comments,
	})
}

// ApproveHeaderDepartment records the approval and escalates it up the
// department tree: while the approving department has a parent, the parent
// becomes the new primary and the status stays HEADER_DEPARTMENT_APPROVED. A
// department with no parent makes the approval final.
func (s *workflowService) ApproveHeaderDepartment(ctx context.Context, docID, deptID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	doc, err := s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusHeaderDeptApproved,
		ActorID:    actorID,
		Comments:   comments,
	})
	if err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.GetByID(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("workflowService.ApproveHeaderDepartment: %w", err)
	}

	if dept.ParentID != nil {
		if err := s.assignments.AssignDocumentToDepartment(ctx, AssignDepartmentInput{
			DocumentID:   docID,
			DepartmentID: *dept.ParentID,
			ActorID:      actorID,
			IsPrimary:    true,
			Comments:     fmt.Sprintf("forwarded to parent department after approval by %s", dept.Name),
		}); err != nil {
			return nil, fmt.Errorf("workflowService.ApproveHeaderDepartment: %w", err)
		}
		return doc, nil
	}

	// No parent: this approval is final.
	s.sendFinalApprovalEmail(ctx, doc)
	return doc, nil
}

func (s *workflowService) RejectForFormatCorrection(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusFormatCorrection,
		ActorID:    actorID,
		Comments:   comments,
	})
}

func (s *workflowService) MarkFormatCorrected(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusFormatCorrected,
		ActorID:    actorID,
		Comments:   comments,
	})
}

func (s *workflowService) CompleteDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusCompleted,
		ActorID:    actorID,
		Comments:   comments,
	})
}

func (s *workflowService) PublishOutgoingDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	current, err := s.documentRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("workflowService.PublishOutgoingDocument: %w", err)
	}
	if current.Kind != domain.KindOutgoing {
		return nil, fmt.Errorf("workflowService.PublishOutgoingDocument: %w", domain.ErrNotOutgoingDocument)
	}

	doc, err := s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusPublished,
		ActorID:    actorID,
		Comments:   comments,
	})
	if err != nil {
		return nil, err
	}

	s.sendPublicationEmail(ctx, doc)
	return doc, nil
}

func (s *workflowService) RejectDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusRejected,
		ActorID:    actorID,
		Comments:   comments,
	})
}

func (s *workflowService) ArchiveDocument(ctx context.Context, docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
	return s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID: docID,
		NewStatus:  domain.StatusArchived,
		ActorID:    actorID,
		Comments:   comments,
	})
}

func (s *workflowService) ProvideDocumentFeedbackWithAttachment(ctx context.Context, input FeedbackInput) (*domain.Document, error) {
	doc, err := s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID:    input.DocumentID,
		NewStatus:     domain.StatusLeaderCommented,
		ActorID:       input.ActorID,
		Comments:      input.Comments,
		AttachmentKey: input.AttachmentKey,
	})
	if err != nil {
		return nil, err
	}
	s.mirrorToIncomingDocuments(ctx, doc, input)
	return doc, nil
}

func (s *workflowService) CommentHeaderDepartmentWithAttachment(ctx context.Context, input FeedbackInput) (*domain.Document, error) {
	doc, err := s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID:    input.DocumentID,
		NewStatus:     domain.StatusHeaderDeptCommented,
		ActorID:       input.ActorID,
		Comments:      input.Comments,
		AttachmentKey: input.AttachmentKey,
	})
	if err != nil {
		return nil, err
	}
	s.mirrorToIncomingDocuments(ctx, doc, input)
	return doc, nil
}

func (s *workflowService) RejectDocumentWithAttachment(ctx context.Context, input FeedbackInput) (*domain.Document, error) {
	doc, err := s.ChangeDocumentStatus(ctx, ChangeStatusInput{
		DocumentID:    input.DocumentID,
		NewStatus:     domain.StatusRejected,
		ActorID:       input.ActorID,
		Comments:      input.Comments,
		AttachmentKey: input.AttachmentKey,
	})
	if err != nil {
		return nil, err
	}
	s.mirrorToIncomingDocuments(ctx, doc, input)
	return doc, nil
}

// mirrorToIncomingDocuments appends a FEEDBACK history row to every incoming
// document related to the outgoing document, tagged by the actor's role
// group. Non-outgoing documents are skipped without error, and per-row
// failures are logged and skipped so one bad relationship cannot abort the
// feedback.
func (s *workflowService) mirrorToIncomingDocuments(ctx context.Context, doc *domain.Document, input FeedbackInput) {
	if doc.Kind != domain.KindOutgoing {
		return
	}

	mirroredStatus := domain.StatusLeaderCommented
	if !domain.HasLeaderRole(input.ActorRoles) && domain.HasDepartmentHeadRole(input.ActorRoles) {
		mirroredStatus = domain.StatusHeaderDeptCommented
	}

	incoming, err := s.relationshipRepo.ListIncomingForOutgoing(ctx, doc.ID)
	if err != nil {
		log.Printf("workflowService.mirrorToIncomingDocuments: listing incoming documents for %s: %v", doc.ID, err)
		return
	}
	for _, in := range incoming {
		entry := &domain.DocumentHistory{
			DocumentID:     in.ID,
			Action:         domain.ActionFeedback,
			PreviousStatus: string(in.Status),
			NewStatus:      string(mirroredStatus),
			PerformedBy:    input.ActorID,
			Comments:       fmt.Sprintf("feedback on related outgoing document %s: %s", doc.DocumentNumber, input.Comments),
			AttachmentKey:  input.AttachmentKey,
		}
		if err := s.historyRepo.Create(ctx, entry); err != nil {
			log.Printf("workflowService.mirrorToIncomingDocuments: mirroring to document %s: %v", in.ID, err)
		}
	}
}

func (s *workflowService) IsLeader(roles []string) bool {
	return domain.HasLeaderRole(roles)
}

func (s *workflowService) IsDepartmentHead(roles []string) bool {
	return domain.HasDepartmentHeadRole(roles)
}

// sendFinalApprovalEmail emails the document's creator; failures are logged,
// never propagated.
func (s *workflowService) sendFinalApprovalEmail(ctx context.Context, doc *domain.Document) {
	if s.emailSender == nil {
		return
	}
	creator, err := s.userRepo.GetByID(ctx, doc.CreatedBy)
	if err != nil {
		log.Printf("workflowService.sendFinalApprovalEmail: loading creator of %s: %v", doc.ID, err)
		return
	}
	if err := s.emailSender.SendFinalApprovalEmail(ctx, creator.Email, creator.FullName, doc.DocumentNumber, doc.Title); err != nil {
		log.Printf("workflowService.sendFinalApprovalEmail: sending to %s: %v", creator.Email, err)
	}
}

// sendPublicationEmail emails the document's creator; failures are logged,
// never propagated.
func (s *workflowService) sendPublicationEmail(ctx context.Context, doc *domain.Document) {
	if s.emailSender == nil {
		return
	}
	creator, err := s.userRepo.GetByID(ctx, doc.CreatedBy)
	if err != nil {
		log.Printf("workflowService.sendPublicationEmail: loading creator of %s: %v", doc.ID, err)
		return
	}
	if err := s.emailSender.SendPublicationEmail(ctx, creator.Email, creator.FullName, doc.DocumentNumber, doc.Title); err != nil {
		log.Printf("workflowService.sendPublicationEmail: sending to %s: %v", creator.Email, err)
	}
}

// audit records a history row; failures are logged, never propagated. The
// status write has already committed by the time this runs.
func (s *workflowService) audit(ctx context.Context, entry *domain.DocumentHistory) {
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		log.Printf("workflowService.audit: failed to record history for document %s: %v", entry.DocumentID, err)
	}
}

// notify delivers a best-effort notification; failures are logged, never
// propagated.
func (s *workflowService) notify(ctx context.Context, docID, recipientID uuid.UUID, ntype domain.NotificationType, content string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CreateAndSend(ctx, docID, "document", recipientID, ntype, content); err != nil {
		log.Printf("workflowService.notify: failed to notify %s about document %s: %v", recipientID, docID, err)
	}
}
