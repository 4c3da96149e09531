package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/service"
	"docflow/mocks"
)

type assignmentFixture struct {
	svc            service.AssignmentService
	documentRepo   *mocks.MockDocumentRepo
	departmentRepo *mocks.MockDepartmentRepo
	assignmentRepo *mocks.MockAssignmentRepo
	userRepo       *mocks.MockUserRepo
	historyRepo    *mocks.MockHistoryRepo
	notifier       *mocks.MockNotificationSink
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	f := &assignmentFixture{
		documentRepo:   new(mocks.MockDocumentRepo),
		departmentRepo: new(mocks.MockDepartmentRepo),
		assignmentRepo: new(mocks.MockAssignmentRepo),
		userRepo:       new(mocks.MockUserRepo),
		historyRepo:    new(mocks.MockHistoryRepo),
		notifier:       new(mocks.MockNotificationSink),
	}
	f.svc = service.NewAssignmentService(
		f.documentRepo, f.departmentRepo, f.assignmentRepo,
		f.userRepo, f.historyRepo, f.notifier,
	)
	return f
}

// expectResolved stubs the document, department and actor lookups that every
// assignment goes through.
func (f *assignmentFixture) expectResolved(doc *domain.Document, dept *domain.Department, actorID uuid.UUID) {
	f.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	f.departmentRepo.On("GetByID", mock.Anything, dept.ID).Return(dept, nil)
	f.userRepo.On("GetByID", mock.Anything, actorID).Return(&domain.User{ID: actorID, IsActive: true}, nil)
}

func (f *assignmentFixture) expectSideEffects() {
	f.historyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("CreateAndSend", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func TestAssignDocumentToDepartment_CreatesNewAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	doc := &domain.Document{ID: uuid.New(), DocumentNumber: "2026/12-CV", Status: domain.StatusDistributed}
	dept := &domain.Department{ID: uuid.New(), Name: "Archives"}
	actorID := uuid.New()

	f.expectResolved(doc, dept, actorID)
	f.expectSideEffects()
	f.assignmentRepo.On("GetByDocumentAndDepartment", mock.Anything, doc.ID, dept.ID).
		Return(nil, domain.ErrNotFound)

	var created *domain.DepartmentAssignment
	f.assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DepartmentAssignment")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.DepartmentAssignment)
		}).Return(nil).Once()

	err := f.svc.AssignDocumentToDepartment(context.Background(), service.AssignDepartmentInput{
		DocumentID:   doc.ID,
		DepartmentID: dept.ID,
		ActorID:      actorID,
		Comments:     "for filing",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, doc.ID, created.DocumentID)
	assert.Equal(t, dept.ID, created.DepartmentID)
	assert.False(t, created.IsPrimary)
	assert.Equal(t, actorID, created.AssignedBy)
}

func TestAssignDocumentToDepartment_UpdatesExistingAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	doc := &domain.Document{ID: uuid.New(), DocumentNumber: "2026/12-CV", Status: domain.StatusDistributed}
	dept := &domain.Department{ID: uuid.New(), Name: "Archives"}
	actorID := uuid.New()
	existing := &domain.DepartmentAssignment{
		ID:           uuid.New(),
		DocumentID:   doc.ID,
		DepartmentID: dept.ID,
		IsPrimary:    false,
	}

	f.expectResolved(doc, dept, actorID)
	f.expectSideEffects()
	f.assignmentRepo.On("GetByDocumentAndDepartment", mock.Anything, doc.ID, dept.ID).
		Return(existing, nil)
	f.assignmentRepo.On("Update", mock.Anything, existing).Return(nil)
	f.assignmentRepo.On("ListByDocument", mock.Anything, doc.ID).
		Return([]domain.DepartmentAssignment{*existing}, nil)

	err := f.svc.AssignDocumentToDepartment(context.Background(), service.AssignDepartmentInput{
		DocumentID:   doc.ID,
		DepartmentID: dept.ID,
		ActorID:      actorID,
		IsPrimary:    true,
	})
	require.NoError(t, err)
	assert.True(t, existing.IsPrimary)
	f.assignmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssignDocumentToDepartment_UnresolvedDocumentIsNoOp(t *testing.T) {
	f := newAssignmentFixture(t)
	docID := uuid.New()
	f.documentRepo.On("GetByID", mock.Anything, docID).Return(nil, domain.ErrDocumentNotFound)

	err := f.svc.AssignDocumentToDepartment(context.Background(), service.AssignDepartmentInput{
		DocumentID:   docID,
		DepartmentID: uuid.New(),
		ActorID:      uuid.New(),
	})
	assert.NoError(t, err)
	f.assignmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.historyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssignDocumentToDepartment_DemotesSiblingPrimary(t *testing.T) {
	f := newAssignmentFixture(t)
	doc := &domain.Document{ID: uuid.New(), DocumentNumber: "2026/12-CV", Status: domain.StatusDistributed}
	newDept := &domain.Department{ID: uuid.New(), Name: "Planning"}
	sibling := &domain.Department{ID: uuid.New(), Name: "Finance"}
	actorID := uuid.New()

	siblingAssignment := domain.DepartmentAssignment{
		ID:           uuid.New(),
		DocumentID:   doc.ID,
		DepartmentID: sibling.ID,
		IsPrimary:    true,
	}

	f.expectResolved(doc, newDept, actorID)
	f.expectSideEffects()
	f.departmentRepo.On("GetByID", mock.Anything, sibling.ID).Return(sibling, nil)
	f.assignmentRepo.On("GetByDocumentAndDepartment", mock.Anything, doc.ID, newDept.ID).
		Return(nil, domain.ErrNotFound)
	f.assignmentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.assignmentRepo.On("ListByDocument", mock.Anything, doc.ID).
		Return([]domain.DepartmentAssignment{siblingAssignment}, nil)

	var demoted *domain.DepartmentAssignment
	f.assignmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.DepartmentAssignment")).
		Run(func(args mock.Arguments) {
			demoted = args.Get(1).(*domain.DepartmentAssignment)
		}).Return(nil).Once()

	err := f.svc.AssignDocumentToDepartment(context.Background(), service.AssignDepartmentInput{
		DocumentID:   doc.ID,
		DepartmentID: newDept.ID,
		ActorID:      actorID,
		IsPrimary:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, demoted)
	assert.Equal(t, sibling.ID, demoted.DepartmentID)
	assert.False(t, demoted.IsPrimary)
}

func TestAssignDocumentToDepartment_AncestorPrimarySurvives(t *testing.T) {
	f := newAssignmentFixture(t)
	doc := &domain.Document{ID: uuid.New(), DocumentNumber: "2026/12-CV", Status: domain.StatusDistributed}
	parent := &domain.Department{ID: uuid.New(), Name: "Directorate"}
	child := &domain.Department{ID: uuid.New(), Name: "Planning", ParentID: &parent.ID}
	actorID := uuid.New()

	parentAssignment := domain.DepartmentAssignment{
		ID:           uuid.New(),
		DocumentID:   doc.ID,
		DepartmentID: parent.ID,
		IsPrimary:    true,
	}

	f.expectResolved(doc, child, actorID)
	f.expectSideEffects()
	f.departmentRepo.On("GetByID", mock.Anything, parent.ID).Return(parent, nil)
	f.assignmentRepo.On("GetByDocumentAndDepartment", mock.Anything, doc.ID, child.ID).
		Return(nil, domain.ErrNotFound)
	f.assignmentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.assignmentRepo.On("ListByDocument", mock.Anything, doc.ID).
		Return([]domain.DepartmentAssignment{parentAssignment}, nil)

	err := f.svc.AssignDocumentToDepartment(context.Background(), service.AssignDepartmentInput{
		DocumentID:   doc.ID,
		DepartmentID: child.ID,
		ActorID:      actorID,
		IsPrimary:    true,
	})
	require.NoError(t, err)

	// The parent sits on the new primary's ancestor path; it keeps its flag.
	f.assignmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetPrimaryDepartmentForDocument(t *testing.T) {
	f := newAssignmentFixture(t)
	docID := uuid.New()
	dept := &domain.Department{ID: uuid.New(), Name: "Planning"}

	f.assignmentRepo.On("ListByDocument", mock.Anything, docID).
		Return([]domain.DepartmentAssignment{
			{DocumentID: docID, DepartmentID: uuid.New(), IsPrimary: false},
			{DocumentID: docID, DepartmentID: dept.ID, IsPrimary: true},
		}, nil)
	f.departmentRepo.On("GetByID", mock.Anything, dept.ID).Return(dept, nil)

	got, err := f.svc.GetPrimaryDepartmentForDocument(context.Background(), docID)
	require.NoError(t, err)
	assert.Equal(t, dept.ID, got.ID)
}

func TestGetPrimaryDepartmentForDocument_NonePrimary(t *testing.T) {
	f := newAssignmentFixture(t)
	docID := uuid.New()
	f.assignmentRepo.On("ListByDocument", mock.Anything, docID).
		Return([]domain.DepartmentAssignment{
			{DocumentID: docID, DepartmentID: uuid.New(), IsPrimary: false},
		}, nil)

	_, err := f.svc.GetPrimaryDepartmentForDocument(context.Background(), docID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveDepartmentFromDocument_MissingAssignmentIsNoOp(t *testing.T) {
	f := newAssignmentFixture(t)
	docID, deptID := uuid.New(), uuid.New()
	f.assignmentRepo.On("Delete", mock.Anything, docID, deptID).Return(domain.ErrNotFound)

	err := f.svc.RemoveDepartmentFromDocument(context.Background(), docID, deptID)
	assert.NoError(t, err)
}
