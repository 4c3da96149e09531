package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/service"
)

// DepartmentHandler serves department hierarchy endpoints.
type DepartmentHandler struct {
	departmentSvc service.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(departmentSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentSvc: departmentSvc}
}

type createDepartmentRequest struct {
	Name     string     `json:"name" binding:"required"`
	Code     string     `json:"code" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type updateDepartmentRequest struct {
	Name     *string    `json:"name"`
	Code     *string    `json:"code"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// Create creates a department.
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	dept, err := h.departmentSvc.CreateDepartment(c.Request.Context(), service.CreateDepartmentInput{
		Name:     req.Name,
		Code:     req.Code,
		ParentID: req.ParentID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, dept)
}

// List lists all departments.
func (h *DepartmentHandler) List(c *gin.Context) {
	depts, err := h.departmentSvc.ListDepartments(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, depts)
}

// GetByID returns a single department.
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	deptID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	dept, err := h.departmentSvc.GetDepartment(c.Request.Context(), deptID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, dept)
}

// Children lists a department's direct children.
func (h *DepartmentHandler) Children(c *gin.Context) {
	deptID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	depts, err := h.departmentSvc.ListChildren(c.Request.Context(), deptID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, depts)
}

// Update updates a department.
func (h *DepartmentHandler) Update(c *gin.Context) {
	deptID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	dept, err := h.departmentSvc.UpdateDepartment(c.Request.Context(), deptID, service.UpdateDepartmentInput{
		Name:     req.Name,
		Code:     req.Code,
		ParentID: req.ParentID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, dept)
}

// Delete removes a department without children.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	deptID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.departmentSvc.DeleteDepartment(c.Request.Context(), deptID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": deptID})
}
