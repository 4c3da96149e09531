package port

import (
	"context"

	"github.com/google/uuid"

	"docflow/internal/domain"
)

// NotificationRepository defines the contract for notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error
}

// NotificationSink delivers a message to a user's channel. Callers treat
// delivery as fire-and-forget: no guarantee is assumed and errors are for
// logging only.
type NotificationSink interface {
	CreateAndSend(ctx context.Context, entityID uuid.UUID, entityType string, recipientID uuid.UUID, ntype domain.NotificationType, content string) error
}
