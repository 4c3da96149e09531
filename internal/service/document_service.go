package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// CreateDocumentInput carries the parameters for creating a document.
type CreateDocumentInput struct {
	Kind            domain.DocumentKind
	DocumentNumber  string
	Title           string
	DocumentType    string
	ProcessDeadline *time.Time
	SignerID        *uuid.UUID
	CreatedBy       uuid.UUID
}

// UpdateDocumentInput carries the mutable document fields. Nil pointers mean
// "leave unchanged".
type UpdateDocumentInput struct {
	Title           *string
	DocumentType    *string
	ProcessDeadline *time.Time
	SignerID        *uuid.UUID
	ActorID         uuid.UUID
}

// DocumentService owns document CRUD and the relationship links between
// outgoing and incoming documents. Status changes are not part of this
// service; they go through the WorkflowService exclusively.
type DocumentService interface {
	CreateDocument(ctx context.Context, input CreateDocumentInput) (*domain.Document, error)
	GetDocument(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	ListDocuments(ctx context.Context, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	UpdateDocument(ctx context.Context, docID uuid.UUID, input UpdateDocumentInput) (*domain.Document, error)
	DeleteDocument(ctx context.Context, docID uuid.UUID) error
	GetHistory(ctx context.Context, docID uuid.UUID) ([]domain.DocumentHistory, error)
	LinkResponse(ctx context.Context, outgoingID, incomingID uuid.UUID) error
	UnlinkResponse(ctx context.Context, outgoingID, incomingID uuid.UUID) error
	ListRelatedIncoming(ctx context.Context, outgoingID uuid.UUID) ([]domain.Document, error)
}

type documentService struct {
	documentRepo     port.DocumentRepository
	historyRepo      port.HistoryRepository
	relationshipRepo port.RelationshipRepository
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	documentRepo port.DocumentRepository,
	historyRepo port.HistoryRepository,
	relationshipRepo port.RelationshipRepository,
) DocumentService {
	return &documentService{
		documentRepo:     documentRepo,
		historyRepo:      historyRepo,
		relationshipRepo: relationshipRepo,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, input CreateDocumentInput) (*domain.Document, error) {
	if !domain.ValidDocumentKinds[input.Kind] {
		return nil, fmt.Errorf("documentService.CreateDocument: invalid document kind %q", input.Kind)
	}

	doc := &domain.Document{
		ID:              uuid.New(),
		Kind:            input.Kind,
		DocumentNumber:  input.DocumentNumber,
		Title:           input.Title,
		DocumentType:    input.DocumentType,
		Status:          domain.StatusDraft,
		Version:         1,
		ProcessDeadline: input.ProcessDeadline,
		CreatedBy:       input.CreatedBy,
		SignerID:        input.SignerID,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("documentService.CreateDocument: %w", err)
	}

	log.Printf("documentService.CreateDocument: created %s document %s (%s)", doc.Kind, doc.DocumentNumber, doc.ID)
	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("documentService.GetDocument: %w", err)
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	docs, total, err := s.documentRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("documentService.ListDocuments: %w", err)
	}
	return docs, total, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, docID uuid.UUID, input UpdateDocumentInput) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("documentService.UpdateDocument: %w", err)
	}

	previousType := doc.DocumentType
	if input.Title != nil {
		doc.Title = *input.Title
	}
	if input.DocumentType != nil {
		doc.DocumentType = *input.DocumentType
	}
	if input.ProcessDeadline != nil {
		doc.ProcessDeadline = input.ProcessDeadline
	}
	if input.SignerID != nil {
		doc.SignerID = input.SignerID
	}

	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("documentService.UpdateDocument: %w", err)
	}

	if input.DocumentType != nil && *input.DocumentType != previousType {
		entry := &domain.DocumentHistory{
			DocumentID:     doc.ID,
			Action:         domain.ActionDocumentTypeChange,
			PreviousStatus: string(doc.Status),
			NewStatus:      string(doc.Status),
			PerformedBy:    input.ActorID,
			Comments:       fmt.Sprintf("document type changed from %q to %q", previousType, doc.DocumentType),
		}
		if err := s.historyRepo.Create(ctx, entry); err != nil {
			log.Printf("documentService.UpdateDocument: failed to record type change for %s: %v", doc.ID, err)
		}
	}

	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, docID uuid.UUID) error {
	if err := s.documentRepo.Delete(ctx, docID); err != nil {
		return fmt.Errorf("documentService.DeleteDocument: %w", err)
	}
	return nil
}

func (s *documentService) GetHistory(ctx context.Context, docID uuid.UUID) ([]domain.DocumentHistory, error) {
	if _, err := s.documentRepo.GetByID(ctx, docID); err != nil {
		return nil, fmt.Errorf("documentService.GetHistory: %w", err)
	}
	entries, err := s.historyRepo.ListByDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("documentService.GetHistory: %w", err)
	}
	return entries, nil
}

func (s *documentService) LinkResponse(ctx context.Context, outgoingID, incomingID uuid.UUID) error {
	outgoing, err := s.documentRepo.GetByID(ctx, outgoingID)
	if err != nil {
		return fmt.Errorf("documentService.LinkResponse: %w", err)
	}
	if outgoing.Kind != domain.KindOutgoing {
		return fmt.Errorf("documentService.LinkResponse: %w", domain.ErrNotOutgoingDocument)
	}
	if _, err := s.documentRepo.GetByID(ctx, incomingID); err != nil {
		return fmt.Errorf("documentService.LinkResponse: %w", err)
	}
	if err := s.relationshipRepo.Link(ctx, outgoingID, incomingID); err != nil {
		return fmt.Errorf("documentService.LinkResponse: %w", err)
	}
	return nil
}

func (s *documentService) UnlinkResponse(ctx context.Context, outgoingID, incomingID uuid.UUID) error {
	if err := s.relationshipRepo.Unlink(ctx, outgoingID, incomingID); err != nil {
		return fmt.Errorf("documentService.UnlinkResponse: %w", err)
	}
	return nil
}

func (s *documentService) ListRelatedIncoming(ctx context.Context, outgoingID uuid.UUID) ([]domain.Document, error) {
	docs, err := s.relationshipRepo.ListIncomingForOutgoing(ctx, outgoingID)
	if err != nil {
		return nil, fmt.Errorf("documentService.ListRelatedIncoming: %w", err)
	}
	return docs, nil
}
