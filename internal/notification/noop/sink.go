// Package noop provides a NotificationSink that only persists the
// notification row, for deployments without Redis and for tests.
package noop

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type sink struct {
	repo port.NotificationRepository
}

// NewSink returns a NotificationSink without a live delivery channel.
func NewSink(repo port.NotificationRepository) port.NotificationSink {
	return &sink{repo: repo}
}

func (s *sink) CreateAndSend(ctx context.Context, entityID uuid.UUID, entityType string, recipientID uuid.UUID, ntype domain.NotificationType, content string) error {
	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		EntityID:    entityID,
		EntityType:  entityType,
		Type:        ntype,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	return s.repo.Create(ctx, n)
}
