package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockNotificationRepo is a mock implementation of port.NotificationRepository.
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, offset, limit int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, recipientID, unreadOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationRepo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error {
	args := m.Called(ctx, recipientID, ids)
	return args.Error(0)
}

// MockNotificationSink is a mock implementation of port.NotificationSink.
type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) CreateAndSend(ctx context.Context, entityID uuid.UUID, entityType string, recipientID uuid.UUID, ntype domain.NotificationType, content string) error {
	args := m.Called(ctx, entityID, entityType, recipientID, ntype, content)
	return args.Error(0)
}

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendFinalApprovalEmail(ctx context.Context, toEmail, toName, documentNumber, title string) error {
	args := m.Called(ctx, toEmail, toName, documentNumber, title)
	return args.Error(0)
}

func (m *MockEmailSender) SendPublicationEmail(ctx context.Context, toEmail, toName, documentNumber, title string) error {
	args := m.Called(ctx, toEmail, toName, documentNumber, title)
	return args.Error(0)
}
