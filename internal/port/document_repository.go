package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// DocumentFilter narrows document listings. Zero values mean "no filter".
type DocumentFilter struct {
	Kind         domain.DocumentKind
	Statuses     []domain.DocumentStatus
	DepartmentID *uuid.UUID
	CreatedBy    *uuid.UUID
	From         *time.Time
	To           *time.Time
}

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	GetByNumber(ctx context.Context, kind domain.DocumentKind, number string) (*domain.Document, error)
	List(ctx context.Context, filter DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	Update(ctx context.Context, doc *domain.Document) error
	// UpdateStatus persists a status change with an optimistic version check.
	// The document's Version must hold the value read before the change; on
	// success the stored and in-memory versions are bumped. A lost race
	// returns domain.ErrVersionConflict.
	UpdateStatus(ctx context.Context, doc *domain.Document) error
	UpdatePrimaryProcessor(ctx context.Context, docID uuid.UUID, processorID *uuid.UUID) error
	Delete(ctx context.Context, docID uuid.UUID) error
}

// HistoryRepository defines the contract for the append-only audit trail.
// There are deliberately no update or delete operations.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.DocumentHistory) error
	ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DocumentHistory, error)
	// GetLastByDocumentAndUser returns the most recent history entry the user
	// personally recorded on the document, or domain.ErrNotFound.
	GetLastByDocumentAndUser(ctx context.Context, docID, userID uuid.UUID) (*domain.DocumentHistory, error)
	// ExistsByDocumentAndStatus reports whether any history entry on the
	// document ever recorded the given new status.
	ExistsByDocumentAndStatus(ctx context.Context, docID uuid.UUID, status domain.DocumentStatus) (bool, error)
}
