package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/service"
)

// AssignmentHandler serves document-department assignment endpoints.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

type assignDepartmentRequest struct {
	DepartmentID uuid.UUID  `json:"department_id" binding:"required"`
	IsPrimary    bool       `json:"is_primary"`
	Comments     string     `json:"comments"`
	DueDate      *time.Time `json:"due_date"`
}

// Assign upserts a department assignment on a document.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req assignDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	err := h.assignmentSvc.AssignDocumentToDepartment(c.Request.Context(), service.AssignDepartmentInput{
		DocumentID:   docID,
		DepartmentID: req.DepartmentID,
		ActorID:      actorID,
		IsPrimary:    req.IsPrimary,
		Comments:     req.Comments,
		DueDate:      req.DueDate,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"document_id": docID, "department_id": req.DepartmentID})
}

// Remove deletes a department assignment from a document.
func (h *AssignmentHandler) Remove(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	deptID, ok := parseUUIDParam(c, "deptId")
	if !ok {
		return
	}
	if err := h.assignmentSvc.RemoveDepartmentFromDocument(c.Request.Context(), docID, deptID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"removed": deptID})
}

// List returns all department assignments on a document.
func (h *AssignmentHandler) List(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	assignments, err := h.assignmentSvc.GetDepartmentsByDocument(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, assignments)
}

// Primary returns the document's primary department.
func (h *AssignmentHandler) Primary(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	dept, err := h.assignmentSvc.GetPrimaryDepartmentForDocument(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, dept)
}

// Collaborating returns the document's non-primary departments.
func (h *AssignmentHandler) Collaborating(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	depts, err := h.assignmentSvc.GetCollaboratingDepartmentsForDocument(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, depts)
}
