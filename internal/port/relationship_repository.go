package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// RelationshipRepository links outgoing documents to the incoming documents
// they respond to.
type RelationshipRepository interface {
	Link(ctx context.Context, outgoingID, incomingID uuid.UUID) error
	Unlink(ctx context.Context, outgoingID, incomingID uuid.UUID) error
	// ListIncomingForOutgoing returns the incoming documents related to the
	// given outgoing document.
	ListIncomingForOutgoing(ctx context.Context, outgoingID uuid.UUID) ([]domain.Document, error)
}
