package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/service"
	"docflow/mocks"
)

type workflowMocks struct {
	documentRepo     *mocks.MockDocumentRepo
	historyRepo      *mocks.MockHistoryRepo
	departmentRepo   *mocks.MockDepartmentRepo
	relationshipRepo *mocks.MockRelationshipRepo
	userRepo         *mocks.MockUserRepo
	assignments      *mocks.MockAssignmentService
	notifier         *mocks.MockNotificationSink
	emailSender      *mocks.MockEmailSender
}

func newWorkflowService(t *testing.T) (service.WorkflowService, *workflowMocks) {
	t.Helper()
	m := &workflowMocks{
		documentRepo:     new(mocks.MockDocumentRepo),
		historyRepo:      new(mocks.MockHistoryRepo),
		departmentRepo:   new(mocks.MockDepartmentRepo),
		relationshipRepo: new(mocks.MockRelationshipRepo),
		userRepo:         new(mocks.MockUserRepo),
		assignments:      new(mocks.MockAssignmentService),
		notifier:         new(mocks.MockNotificationSink),
		emailSender:      new(mocks.MockEmailSender),
	}
	svc := service.NewWorkflowService(
		m.documentRepo, m.historyRepo, m.departmentRepo, m.relationshipRepo,
		m.userRepo, m.assignments, m.notifier, m.emailSender,
	)
	return svc, m
}

func testDocument(kind domain.DocumentKind, status domain.DocumentStatus) *domain.Document {
	return &domain.Document{
		ID:             uuid.New(),
		Kind:           kind,
		DocumentNumber: "2026/108-CV",
		Title:          "Quarterly infrastructure review",
		Status:         status,
		Version:        3,
		CreatedBy:      uuid.New(),
	}
}

func TestCanChangeStatus(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusDraft)
	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	ok, err := svc.CanChangeStatus(context.Background(), doc.ID, domain.StatusRegistered)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanChangeStatus(context.Background(), doc.ID, domain.StatusPublished)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanChangeStatus_MissingDocument(t *testing.T) {
	svc, m := newWorkflowService(t)
	docID := uuid.New()
	m.documentRepo.On("GetByID", mock.Anything, docID).Return(nil, domain.ErrDocumentNotFound)

	ok, err := svc.CanChangeStatus(context.Background(), docID, domain.StatusRegistered)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegisterIncomingDocument(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusDraft)
	actorID := uuid.New()

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)

	var recorded *domain.DocumentHistory
	m.historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DocumentHistory")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*domain.DocumentHistory)
		}).Return(nil).Once()
	m.notifier.On("CreateAndSend", mock.Anything, doc.ID, "document", actorID,
		domain.NotificationStatusChange, mock.AnythingOfType("string")).Return(nil)

	updated, err := svc.RegisterIncomingDocument(context.Background(), doc.ID, actorID, "received by mail")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRegistered, updated.Status)

	require.NotNil(t, recorded)
	assert.Equal(t, domain.ActionStatusChange, recorded.Action)
	assert.Equal(t, "DRAFT", recorded.PreviousStatus)
	assert.Equal(t, "REGISTERED", recorded.NewStatus)
	assert.Equal(t, actorID, recorded.PerformedBy)
	m.historyRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestChangeDocumentStatus_IllegalTransition(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusDraft)

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	_, err := svc.ChangeDocumentStatus(context.Background(), service.ChangeStatusInput{
		DocumentID: doc.ID,
		NewStatus:  domain.StatusPublished,
		ActorID:    uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	m.documentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	m.historyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChangeDocumentStatus_VersionConflict(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusDraft)

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(domain.ErrVersionConflict)

	_, err := svc.ChangeDocumentStatus(context.Background(), service.ChangeStatusInput{
		DocumentID: doc.ID,
		NewStatus:  domain.StatusRegistered,
		ActorID:    uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	m.historyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChangeDocumentStatus_NotificationFailureSwallowed(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusDraft)

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	updated, err := svc.ChangeDocumentStatus(context.Background(), service.ChangeStatusInput{
		DocumentID: doc.ID,
		NewStatus:  domain.StatusRegistered,
		ActorID:    uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRegistered, updated.Status)
}

func TestChangeDocumentStatus_NotIdempotent(t *testing.T) {
	svc, m := newWorkflowService(t)
	actorID := uuid.New()
	docID := uuid.New()

	// The document re-enters REGISTERED via DISTRIBUTED; both transitions
	// append their own history row.
	first := testDocument(domain.KindIncoming, domain.StatusRegistered)
	first.ID = docID
	m.documentRepo.On("GetByID", mock.Anything, docID).Return(first, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)
	m.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ChangeDocumentStatus(context.Background(), service.ChangeStatusInput{
		DocumentID: docID, NewStatus: domain.StatusDistributed, ActorID: actorID,
	})
	require.NoError(t, err)
	_, err = svc.ChangeDocumentStatus(context.Background(), service.ChangeStatusInput{
		DocumentID: docID, NewStatus: domain.StatusRegistered, ActorID: actorID,
	})
	require.NoError(t, err)

	m.historyRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestDistributeDocument(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusRegistered)
	actorID := uuid.New()
	primaryDept := uuid.New()
	collabDept := uuid.New()

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)

	m.assignments.On("AssignDocumentToDepartment", mock.Anything, mock.MatchedBy(func(in service.AssignDepartmentInput) bool {
		return in.DepartmentID == primaryDept && in.IsPrimary
	})).Return(nil).Once()
	m.assignments.On("AssignDocumentToDepartment", mock.Anything, mock.MatchedBy(func(in service.AssignDepartmentInput) bool {
		return in.DepartmentID == collabDept && !in.IsPrimary
	})).Return(nil).Once()

	updated, err := svc.DistributeDocument(context.Background(), service.DistributeInput{
		DocumentID:         doc.ID,
		PrimaryDeptID:      primaryDept,
		CollaboratingDepts: []uuid.UUID{collabDept},
		ActorID:            actorID,
		Comments:           "x",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDistributed, updated.Status)
	m.assignments.AssertExpectations(t)
}

func TestApproveHeaderDepartment_EscalatesToParent(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusHeaderDeptReviewing)
	actorID := uuid.New()
	parentID := uuid.New()
	dept := &domain.Department{ID: uuid.New(), Name: "Planning Division", ParentID: &parentID}

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.departmentRepo.On("GetByID", mock.Anything, dept.ID).Return(dept, nil)

	m.assignments.On("AssignDocumentToDepartment", mock.Anything, mock.MatchedBy(func(in service.AssignDepartmentInput) bool {
		return in.DepartmentID == parentID && in.IsPrimary
	})).Return(nil).Once()

	updated, err := svc.ApproveHeaderDepartment(context.Background(), doc.ID, dept.ID, actorID, "approved")
	require.NoError(t, err)

	// Escalation keeps the status; only the primary department moves up.
	assert.Equal(t, domain.StatusHeaderDeptApproved, updated.Status)
	m.assignments.AssertExpectations(t)
	m.emailSender.AssertNotCalled(t, "SendFinalApprovalEmail",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveHeaderDepartment_NoParentIsFinal(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusHeaderDeptReviewing)
	creator := &domain.User{ID: doc.CreatedBy, Email: "author@agency.gov", FullName: "An Author"}
	dept := &domain.Department{ID: uuid.New(), Name: "Directorate"}

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.departmentRepo.On("GetByID", mock.Anything, dept.ID).Return(dept, nil)
	m.userRepo.On("GetByID", mock.Anything, doc.CreatedBy).Return(creator, nil)
	m.emailSender.On("SendFinalApprovalEmail", mock.Anything,
		creator.Email, creator.FullName, doc.DocumentNumber, doc.Title).Return(nil).Once()

	_, err := svc.ApproveHeaderDepartment(context.Background(), doc.ID, dept.ID, uuid.New(), "approved")
	require.NoError(t, err)

	m.assignments.AssertNotCalled(t, "AssignDocumentToDepartment", mock.Anything, mock.Anything)
	m.emailSender.AssertExpectations(t)
}

func TestPublishOutgoingDocument_RejectsOtherKinds(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusLeaderApproved)
	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	_, err := svc.PublishOutgoingDocument(context.Background(), doc.ID, uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrNotOutgoingDocument)
	m.documentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestPublishOutgoingDocument_SendsPublicationEmail(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindOutgoing, domain.StatusLeaderApproved)
	creator := &domain.User{ID: doc.CreatedBy, Email: "author@agency.gov", FullName: "An Author"}

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.userRepo.On("GetByID", mock.Anything, doc.CreatedBy).Return(creator, nil)
	m.emailSender.On("SendPublicationEmail", mock.Anything,
		creator.Email, creator.FullName, doc.DocumentNumber, doc.Title).Return(nil).Once()

	updated, err := svc.PublishOutgoingDocument(context.Background(), doc.ID, uuid.New(), "published")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, updated.Status)
	m.emailSender.AssertExpectations(t)
}

func TestProvideFeedback_MirrorsToIncomingDocuments(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindOutgoing, domain.StatusLeaderReviewing)
	actorID := uuid.New()
	incoming := testDocument(domain.KindIncoming, domain.StatusDeptAssigned)

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.relationshipRepo.On("ListIncomingForOutgoing", mock.Anything, doc.ID).
		Return([]domain.Document{*incoming}, nil)

	var entries []*domain.DocumentHistory
	m.historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DocumentHistory")).
		Run(func(args mock.Arguments) {
			entries = append(entries, args.Get(1).(*domain.DocumentHistory))
		}).Return(nil)

	_, err := svc.ProvideDocumentFeedbackWithAttachment(context.Background(), service.FeedbackInput{
		DocumentID:    doc.ID,
		ActorID:       actorID,
		ActorRoles:    []string{domain.RoleBureauLeader},
		Comments:      "needs more detail",
		AttachmentKey: "documents/abc/notes.pdf",
	})
	require.NoError(t, err)

	// One row on the outgoing document, one mirrored row on the incoming.
	require.Len(t, entries, 2)
	mirrored := entries[1]
	assert.Equal(t, incoming.ID, mirrored.DocumentID)
	assert.Equal(t, domain.ActionFeedback, mirrored.Action)
	assert.Equal(t, string(domain.StatusLeaderCommented), mirrored.NewStatus)
	assert.Equal(t, "documents/abc/notes.pdf", mirrored.AttachmentKey)
}

func TestCommentHeaderDepartment_MirrorTagByRole(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindOutgoing, domain.StatusHeaderDeptReviewing)
	incoming := testDocument(domain.KindIncoming, domain.StatusDeptAssigned)

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.relationshipRepo.On("ListIncomingForOutgoing", mock.Anything, doc.ID).
		Return([]domain.Document{*incoming}, nil)

	var entries []*domain.DocumentHistory
	m.historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DocumentHistory")).
		Run(func(args mock.Arguments) {
			entries = append(entries, args.Get(1).(*domain.DocumentHistory))
		}).Return(nil)

	_, err := svc.CommentHeaderDepartmentWithAttachment(context.Background(), service.FeedbackInput{
		DocumentID: doc.ID,
		ActorID:    uuid.New(),
		ActorRoles: []string{domain.RoleDepartmentHead},
		Comments:   "format issues",
	})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, string(domain.StatusHeaderDeptCommented), entries[1].NewStatus)
}

func TestRejectWithAttachment_SkipsMirroringForIncomingDocuments(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusLeaderReviewing)

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.RejectDocumentWithAttachment(context.Background(), service.FeedbackInput{
		DocumentID: doc.ID,
		ActorID:    uuid.New(),
		ActorRoles: []string{domain.RoleBureauLeader},
	})
	require.NoError(t, err)

	m.relationshipRepo.AssertNotCalled(t, "ListIncomingForOutgoing", mock.Anything, mock.Anything)
	m.historyRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAssignToSpecialist_SetsPrimaryProcessor(t *testing.T) {
	svc, m := newWorkflowService(t)
	doc := testDocument(domain.KindIncoming, domain.StatusDeptAssigned)
	specialistID := uuid.New()
	actorID := uuid.New()

	m.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	m.documentRepo.On("UpdateStatus", mock.Anything, doc).Return(nil)
	m.documentRepo.On("UpdatePrimaryProcessor", mock.Anything, doc.ID, &specialistID).Return(nil).Once()
	m.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.AssignToSpecialist(context.Background(), doc.ID, specialistID, actorID, "take this")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSpecialistProcessing, updated.Status)
	require.NotNil(t, updated.PrimaryProcessor)
	assert.Equal(t, specialistID, *updated.PrimaryProcessor)
	m.documentRepo.AssertExpectations(t)
}
