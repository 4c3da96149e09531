package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/port"
	"docflow/internal/service"
	"docflow/mocks"
)

func newDocumentService(t *testing.T) (service.DocumentService, *mocks.MockDocumentRepo, *mocks.MockHistoryRepo, *mocks.MockRelationshipRepo) {
	t.Helper()
	documentRepo := new(mocks.MockDocumentRepo)
	historyRepo := new(mocks.MockHistoryRepo)
	relationshipRepo := new(mocks.MockRelationshipRepo)
	svc := service.NewDocumentService(documentRepo, historyRepo, relationshipRepo)
	return svc, documentRepo, historyRepo, relationshipRepo
}

func TestCreateDocument(t *testing.T) {
	svc, documentRepo, _, _ := newDocumentService(t)
	creatorID := uuid.New()

	documentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	doc, err := svc.CreateDocument(context.Background(), service.CreateDocumentInput{
		Kind:           domain.KindIncoming,
		DocumentNumber: "2026/55-CV",
		Title:          "Budget request",
		DocumentType:   "official letter",
		CreatedBy:      creatorID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, doc.Status)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, creatorID, doc.CreatedBy)
	assert.NotEqual(t, uuid.Nil, doc.ID)
}

func TestCreateDocument_InvalidKind(t *testing.T) {
	svc, documentRepo, _, _ := newDocumentService(t)

	_, err := svc.CreateDocument(context.Background(), service.CreateDocumentInput{
		Kind:           domain.DocumentKind("memo"),
		DocumentNumber: "2026/55-CV",
		CreatedBy:      uuid.New(),
	})
	assert.Error(t, err)
	documentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDocument_DuplicateNumber(t *testing.T) {
	svc, documentRepo, _, _ := newDocumentService(t)
	documentRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateDocumentNumber)

	_, err := svc.CreateDocument(context.Background(), service.CreateDocumentInput{
		Kind:           domain.KindOutgoing,
		DocumentNumber: "2026/55-CV",
		CreatedBy:      uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateDocumentNumber)
}

func TestListDocuments_ClampsLimit(t *testing.T) {
	svc, documentRepo, _, _ := newDocumentService(t)
	documentRepo.On("List", mock.Anything, port.DocumentFilter{}, 0, 50).
		Return([]domain.Document{}, 0, nil).Twice()

	_, _, err := svc.ListDocuments(context.Background(), port.DocumentFilter{}, 0, 0)
	require.NoError(t, err)
	_, _, err = svc.ListDocuments(context.Background(), port.DocumentFilter{}, -3, 5000)
	require.NoError(t, err)
	documentRepo.AssertExpectations(t)
}

func TestUpdateDocument_TypeChangeIsAudited(t *testing.T) {
	svc, documentRepo, historyRepo, _ := newDocumentService(t)
	doc := &domain.Document{
		ID:           uuid.New(),
		Kind:         domain.KindIncoming,
		Status:       domain.StatusRegistered,
		DocumentType: "official letter",
	}
	actorID := uuid.New()
	newType := "directive"

	documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	documentRepo.On("Update", mock.Anything, doc).Return(nil)

	var entry *domain.DocumentHistory
	historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DocumentHistory")).
		Run(func(args mock.Arguments) {
			entry = args.Get(1).(*domain.DocumentHistory)
		}).Return(nil).Once()

	updated, err := svc.UpdateDocument(context.Background(), doc.ID, service.UpdateDocumentInput{
		DocumentType: &newType,
		ActorID:      actorID,
	})
	require.NoError(t, err)
	assert.Equal(t, "directive", updated.DocumentType)

	require.NotNil(t, entry)
	assert.Equal(t, domain.ActionDocumentTypeChange, entry.Action)
	assert.Equal(t, actorID, entry.PerformedBy)
}

func TestUpdateDocument_SameTypeNotAudited(t *testing.T) {
	svc, documentRepo, historyRepo, _ := newDocumentService(t)
	doc := &domain.Document{ID: uuid.New(), Status: domain.StatusRegistered, DocumentType: "directive"}
	sameType := "directive"
	title := "Amended title"

	documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	documentRepo.On("Update", mock.Anything, doc).Return(nil)

	_, err := svc.UpdateDocument(context.Background(), doc.ID, service.UpdateDocumentInput{
		Title:        &title,
		DocumentType: &sameType,
		ActorID:      uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Amended title", doc.Title)
	historyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLinkResponse(t *testing.T) {
	svc, documentRepo, _, relationshipRepo := newDocumentService(t)
	outgoing := &domain.Document{ID: uuid.New(), Kind: domain.KindOutgoing}
	incoming := &domain.Document{ID: uuid.New(), Kind: domain.KindIncoming}

	documentRepo.On("GetByID", mock.Anything, outgoing.ID).Return(outgoing, nil)
	documentRepo.On("GetByID", mock.Anything, incoming.ID).Return(incoming, nil)
	relationshipRepo.On("Link", mock.Anything, outgoing.ID, incoming.ID).Return(nil).Once()

	err := svc.LinkResponse(context.Background(), outgoing.ID, incoming.ID)
	require.NoError(t, err)
	relationshipRepo.AssertExpectations(t)
}

func TestLinkResponse_RejectsNonOutgoingSource(t *testing.T) {
	svc, documentRepo, _, relationshipRepo := newDocumentService(t)
	internal := &domain.Document{ID: uuid.New(), Kind: domain.KindInternal}
	documentRepo.On("GetByID", mock.Anything, internal.ID).Return(internal, nil)

	err := svc.LinkResponse(context.Background(), internal.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotOutgoingDocument)
	relationshipRepo.AssertNotCalled(t, "Link", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetHistory_MissingDocument(t *testing.T) {
	svc, documentRepo, historyRepo, _ := newDocumentService(t)
	docID := uuid.New()
	documentRepo.On("GetByID", mock.Anything, docID).Return(nil, domain.ErrDocumentNotFound)

	_, err := svc.GetHistory(context.Background(), docID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	historyRepo.AssertNotCalled(t, "ListByDocument", mock.Anything, mock.Anything)
}
