package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
	"docflow/internal/service"
)

// DocumentHandler serves document CRUD, history, relationship, and
// classification endpoints.
type DocumentHandler struct {
	documentSvc       service.DocumentService
	classificationSvc service.ClassificationService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentSvc service.DocumentService, classificationSvc service.ClassificationService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc, classificationSvc: classificationSvc}
}

type createDocumentRequest struct {
	Kind            string     `json:"kind" binding:"required"`
	DocumentNumber  string     `json:"document_number" binding:"required"`
	Title           string     `json:"title" binding:"required"`
	DocumentType    string     `json:"document_type"`
	ProcessDeadline *time.Time `json:"process_deadline"`
	SignerID        *uuid.UUID `json:"signer_id"`
}

type updateDocumentRequest struct {
	Title           *string    `json:"title"`
	DocumentType    *string    `json:"document_type"`
	ProcessDeadline *time.Time `json:"process_deadline"`
	SignerID        *uuid.UUID `json:"signer_id"`
}

type linkResponseRequest struct {
	IncomingDocumentID uuid.UUID `json:"incoming_document_id" binding:"required"`
}

// Create creates a document in DRAFT status.
func (h *DocumentHandler) Create(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}

	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	kind := domain.DocumentKind(req.Kind)
	if !domain.ValidDocumentKinds[kind] {
		RespondError(c, http.StatusBadRequest, "INVALID_KIND", "kind must be incoming, outgoing or internal")
		return
	}

	doc, err := h.documentSvc.CreateDocument(c.Request.Context(), service.CreateDocumentInput{
		Kind:            kind,
		DocumentNumber:  req.DocumentNumber,
		Title:           req.Title,
		DocumentType:    req.DocumentType,
		ProcessDeadline: req.ProcessDeadline,
		SignerID:        req.SignerID,
		CreatedBy:       actorID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, doc)
}

// List lists documents with optional filters.
func (h *DocumentHandler) List(c *gin.Context) {
	filter := port.DocumentFilter{}
	if kind := c.Query("kind"); kind != "" {
		filter.Kind = domain.DocumentKind(kind)
	}
	for _, code := range c.QueryArray("status") {
		status, err := domain.StatusFromCode(code)
		if err != nil {
			HandleError(c, err)
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	if v := c.Query("department_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid department_id parameter")
			return
		}
		filter.DepartmentID = &id
	}
	if v := c.Query("created_by"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid created_by parameter")
			return
		}
		filter.CreatedBy = &id
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "from must be RFC3339")
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "to must be RFC3339")
			return
		}
		filter.To = &t
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	docs, total, err := h.documentSvc.ListDocuments(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID returns a single document.
func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.documentSvc.GetDocument(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Update updates the mutable document fields.
func (h *DocumentHandler) Update(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := h.documentSvc.UpdateDocument(c.Request.Context(), docID, service.UpdateDocumentInput{
		Title:           req.Title,
		DocumentType:    req.DocumentType,
		ProcessDeadline: req.ProcessDeadline,
		SignerID:        req.SignerID,
		ActorID:         actorID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Delete removes a document.
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.documentSvc.DeleteDocument(c.Request.Context(), docID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": docID})
}

// History returns a document's audit trail, newest first.
func (h *DocumentHandler) History(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	entries, err := h.documentSvc.GetHistory(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}

// MyStatus returns the acting user's role-relative tracking status for the
// document.
func (h *DocumentHandler) MyStatus(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.classificationSvc.ClassifyForUser(c.Request.Context(), docID, actorID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"tracking_status": status})
}

// LinkResponse links an outgoing document to an incoming document it
// responds to.
func (h *DocumentHandler) LinkResponse(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req linkResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.documentSvc.LinkResponse(c.Request.Context(), docID, req.IncomingDocumentID); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, gin.H{"outgoing_document_id": docID, "incoming_document_id": req.IncomingDocumentID})
}

// UnlinkResponse removes a relationship link.
func (h *DocumentHandler) UnlinkResponse(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	incomingID, ok := parseUUIDParam(c, "incomingId")
	if !ok {
		return
	}
	if err := h.documentSvc.UnlinkResponse(c.Request.Context(), docID, incomingID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"unlinked": incomingID})
}

// RelatedIncoming lists the incoming documents related to an outgoing
// document.
func (h *DocumentHandler) RelatedIncoming(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	docs, err := h.documentSvc.ListRelatedIncoming(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docs)
}
