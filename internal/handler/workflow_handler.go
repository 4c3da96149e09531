package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// WorkflowHandler serves the status transition endpoints. Every mutation
// funnels through the WorkflowService so transition legality is enforced in
// one place.
type WorkflowHandler struct {
	workflowSvc service.WorkflowService
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(workflowSvc service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowSvc: workflowSvc}
}

type changeStatusRequest struct {
	NewStatus     string `json:"new_status" binding:"required"`
	Comments      string `json:"comments"`
	AttachmentKey string `json:"attachment_key"`
}

type transitionRequest struct {
	Comments      string `json:"comments"`
	AttachmentKey string `json:"attachment_key"`
}

type distributeRequest struct {
	PrimaryDepartmentID      uuid.UUID   `json:"primary_department_id" binding:"required"`
	CollaboratingDepartments []uuid.UUID `json:"collaborating_departments"`
	Comments                 string      `json:"comments"`
}

type assignSpecialistRequest struct {
	SpecialistID uuid.UUID `json:"specialist_id" binding:"required"`
	Comments     string    `json:"comments"`
}

type approveHeaderDeptRequest struct {
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
	Comments     string    `json:"comments"`
}

// Successors returns the legal next statuses for a document.
func (h *WorkflowHandler) Successors(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	targets := make([]gin.H, 0, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		allowed, err := h.workflowSvc.CanChangeStatus(c.Request.Context(), docID, status)
		if err != nil {
			HandleError(c, err)
			return
		}
		if allowed {
			targets = append(targets, gin.H{
				"status":       status,
				"display_name": status.DisplayName(),
			})
		}
	}
	RespondOK(c, targets)
}

// ChangeStatus performs a generic status transition.
func (h *WorkflowHandler) ChangeStatus(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	newStatus, err := domain.StatusFromCode(req.NewStatus)
	if err != nil {
		HandleError(c, err)
		return
	}

	doc, err := h.workflowSvc.ChangeDocumentStatus(c.Request.Context(), service.ChangeStatusInput{
		DocumentID:    docID,
		NewStatus:     newStatus,
		ActorID:       actorID,
		Comments:      req.Comments,
		AttachmentKey: req.AttachmentKey,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// transition runs one of the fixed-target wrapper operations.
func (h *WorkflowHandler) transition(c *gin.Context, run func(docID, actorID uuid.UUID, comments string) (*domain.Document, error)) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := run(docID, actorID, req.Comments)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Register registers an incoming document.
func (h *WorkflowHandler) Register(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.RegisterIncomingDocument(c.Request.Context(), docID, actorID, comments)
	})
}

// Distribute distributes a registered document to its departments.
func (h *WorkflowHandler) Distribute(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req distributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := h.workflowSvc.DistributeDocument(c.Request.Context(), service.DistributeInput{
		DocumentID:         docID,
		PrimaryDeptID:      req.PrimaryDepartmentID,
		CollaboratingDepts: req.CollaboratingDepartments,
		ActorID:            actorID,
		Comments:           req.Comments,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// AssignSpecialist assigns the document to a specialist for processing.
func (h *WorkflowHandler) AssignSpecialist(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req assignSpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := h.workflowSvc.AssignToSpecialist(c.Request.Context(), docID, req.SpecialistID, actorID, req.Comments)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// SubmitWork submits the specialist's work for review.
func (h *WorkflowHandler) SubmitWork(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.SubmitSpecialistWork(c.Request.Context(), docID, actorID, comments)
	})
}

// ForwardToLeadership moves the document to leadership review.
func (h *WorkflowHandler) ForwardToLeadership(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.ForwardToLeadership(c.Request.Context(), docID, actorID, comments)
	})
}

// Approve records leadership approval.
func (h *WorkflowHandler) Approve(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.ApproveDocument(c.Request.Context(), docID, actorID, comments)
	})
}

// ApproveHeaderDepartment records a head-department approval with escalation
// up the department tree.
func (h *WorkflowHandler) ApproveHeaderDepartment(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req approveHeaderDeptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := h.workflowSvc.ApproveHeaderDepartment(c.Request.Context(), docID, req.DepartmentID, actorID, req.Comments)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// RejectForFormatCorrection sends an approved document back for format
// fixes.
func (h *WorkflowHandler) RejectForFormatCorrection(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.RejectForFormatCorrection(c.Request.Context(), docID, actorID, comments)
	})
}

// MarkFormatCorrected records that the requested format fixes are done.
func (h *WorkflowHandler) MarkFormatCorrected(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.MarkFormatCorrected(c.Request.Context(), docID, actorID, comments)
	})
}

// Complete marks a document completed.
func (h *WorkflowHandler) Complete(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.CompleteDocument(c.Request.Context(), docID, actorID, comments)
	})
}

// Publish publishes an outgoing document.
func (h *WorkflowHandler) Publish(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.PublishOutgoingDocument(c.Request.Context(), docID, actorID, comments)
	})
}

// Reject rejects a document under review.
func (h *WorkflowHandler) Reject(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.RejectDocument(c.Request.Context(), docID, actorID, comments)
	})
}

// Archive archives a finished document.
func (h *WorkflowHandler) Archive(c *gin.Context) {
	h.transition(c, func(docID, actorID uuid.UUID, comments string) (*domain.Document, error) {
		return h.workflowSvc.ArchiveDocument(c.Request.Context(), docID, actorID, comments)
	})
}

// feedback runs one of the attachment-bearing feedback operations.
func (h *WorkflowHandler) feedback(c *gin.Context, run func(input service.FeedbackInput) (*domain.Document, error)) {
	actorID, roles, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := run(service.FeedbackInput{
		DocumentID:    docID,
		ActorID:       actorID,
		ActorRoles:    roles,
		Comments:      req.Comments,
		AttachmentKey: req.AttachmentKey,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// ProvideFeedback records leadership feedback with an attachment and mirrors
// it to related incoming documents.
func (h *WorkflowHandler) ProvideFeedback(c *gin.Context) {
	h.feedback(c, func(input service.FeedbackInput) (*domain.Document, error) {
		return h.workflowSvc.ProvideDocumentFeedbackWithAttachment(c.Request.Context(), input)
	})
}

// CommentHeaderDepartment records head-department feedback with an
// attachment and mirrors it to related incoming documents.
func (h *WorkflowHandler) CommentHeaderDepartment(c *gin.Context) {
	h.feedback(c, func(input service.FeedbackInput) (*domain.Document, error) {
		return h.workflowSvc.CommentHeaderDepartmentWithAttachment(c.Request.Context(), input)
	})
}

// RejectWithAttachment rejects a document with an attached justification and
// mirrors the rejection to related incoming documents.
func (h *WorkflowHandler) RejectWithAttachment(c *gin.Context) {
	h.feedback(c, func(input service.FeedbackInput) (*domain.Document, error) {
		return h.workflowSvc.RejectDocumentWithAttachment(c.Request.Context(), input)
	})
}
