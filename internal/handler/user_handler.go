package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/service"
)

// UserHandler serves user management endpoints.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type createUserRequest struct {
	Email        string     `json:"email" binding:"required,email"`
	Password     string     `json:"password" binding:"required,min=8"`
	FullName     string     `json:"full_name" binding:"required"`
	Roles        []string   `json:"roles" binding:"required"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

type updateUserRequest struct {
	Email        *string    `json:"email"`
	Password     *string    `json:"password"`
	FullName     *string    `json:"full_name"`
	Roles        []string   `json:"roles"`
	DepartmentID *uuid.UUID `json:"department_id"`
	IsActive     *bool      `json:"is_active"`
}

// Create creates a user.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.userSvc.CreateUser(c.Request.Context(), service.CreateUserInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Roles:        req.Roles,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, user)
}

// List lists users.
func (h *UserHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	users, total, err := h.userSvc.ListUsers(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, users, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID returns a single user.
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userSvc.GetUser(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, user)
}

// Update updates a user.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.userSvc.UpdateUser(c.Request.Context(), userID, service.UpdateUserInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Roles:        req.Roles,
		DepartmentID: req.DepartmentID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, user)
}

// Deactivate deactivates a user.
func (h *UserHandler) Deactivate(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.userSvc.DeactivateUser(c.Request.Context(), userID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deactivated": userID})
}
