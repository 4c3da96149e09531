package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// NotificationService exposes a user's notification inbox.
type NotificationService interface {
	ListNotifications(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error
}

type notificationService struct {
	notificationRepo port.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo port.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	notifications, total, err := s.notificationRepo.ListByRecipient(ctx, recipientID, unreadOnly, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("notificationService.ListNotifications: %w", err)
	}
	return notifications, total, nil
}

func (s *notificationService) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	count, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("notificationService.CountUnread: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, recipientID, ids); err != nil {
		return fmt.Errorf("notificationService.MarkRead: %w", err)
	}
	return nil
}
