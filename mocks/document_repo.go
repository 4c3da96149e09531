// Package mocks provides testify mock doubles for the port interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) GetByNumber(ctx context.Context, kind domain.DocumentKind, number string) (*domain.Document, error) {
	args := m.Called(ctx, kind, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) List(ctx context.Context, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) UpdateStatus(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) UpdatePrimaryProcessor(ctx context.Context, docID uuid.UUID, processorID *uuid.UUID) error {
	args := m.Called(ctx, docID, processorID)
	return args.Error(0)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, docID uuid.UUID) error {
	args := m.Called(ctx, docID)
	return args.Error(0)
}

// MockHistoryRepo is a mock implementation of port.HistoryRepository.
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Create(ctx context.Context, entry *domain.DocumentHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.DocumentHistory, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentHistory), args.Error(1)
}

func (m *MockHistoryRepo) GetLastByDocumentAndUser(ctx context.Context, docID, userID uuid.UUID) (*domain.DocumentHistory, error) {
	args := m.Called(ctx, docID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentHistory), args.Error(1)
}

func (m *MockHistoryRepo) ExistsByDocumentAndStatus(ctx context.Context, docID uuid.UUID, status domain.DocumentStatus) (bool, error) {
	args := m.Called(ctx, docID, status)
	return args.Bool(0), args.Error(1)
}

// MockRelationshipRepo is a mock implementation of port.RelationshipRepository.
type MockRelationshipRepo struct {
	mock.Mock
}

func (m *MockRelationshipRepo) Link(ctx context.Context, outgoingID, incomingID uuid.UUID) error {
	args := m.Called(ctx, outgoingID, incomingID)
	return args.Error(0)
}

func (m *MockRelationshipRepo) Unlink(ctx context.Context, outgoingID, incomingID uuid.UUID) error {
	args := m.Called(ctx, outgoingID, incomingID)
	return args.Error(0)
}

func (m *MockRelationshipRepo) ListIncomingForOutgoing(ctx context.Context, outgoingID uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, outgoingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}
