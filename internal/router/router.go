package router

import (
	"github.com/gin-gonic/gin"

	"docflow/internal/domain"
	"docflow/internal/handler"
	"docflow/internal/middleware"
	"docflow/internal/service"
)

// Handlers bundles the handlers wired into the engine.
type Handlers struct {
	Auth         *handler.AuthHandler
	Document     *handler.DocumentHandler
	Workflow     *handler.WorkflowHandler
	Assignment   *handler.AssignmentHandler
	Department   *handler.DepartmentHandler
	User         *handler.UserHandler
	Notification *handler.NotificationHandler
	Dashboard    *handler.DashboardHandler
	Attachment   *handler.AttachmentHandler
	Health       *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, corsOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	clerkOnly := middleware.RequireAnyRole(domain.RoleClerk)
	leadership := middleware.RequireAnyRole(domain.RoleBureauLeader, domain.RoleDeputyBureau)
	deptLeadership := middleware.RequireAnyRole(domain.RoleDepartmentHead, domain.RoleDeputyDeptHead)
	staff := middleware.RequireAnyRole(domain.RoleSpecialist, domain.RoleAssistant)

	// Documents
	docs := protected.Group("/documents")
	docs.POST("", h.Document.Create)
	docs.GET("", h.Document.List)
	docs.GET("/:id", h.Document.GetByID)
	docs.PUT("/:id", h.Document.Update)
	docs.DELETE("/:id", middleware.RequireAnyRole(domain.RoleAdmin), h.Document.Delete)
	docs.GET("/:id/history", h.Document.History)
	docs.GET("/:id/my-status", h.Document.MyStatus)

	// Relationships (outgoing -> incoming)
	docs.POST("/:id/responses", h.Document.LinkResponse)
	docs.DELETE("/:id/responses/:incomingId", h.Document.UnlinkResponse)
	docs.GET("/:id/responses", h.Document.RelatedIncoming)

	// Workflow transitions
	docs.GET("/:id/transitions", h.Workflow.Successors)
	docs.POST("/:id/status", h.Workflow.ChangeStatus)
	docs.POST("/:id/register", clerkOnly, h.Workflow.Register)
	docs.POST("/:id/distribute", clerkOnly, h.Workflow.Distribute)
	docs.POST("/:id/assign-specialist", deptLeadership, h.Workflow.AssignSpecialist)
	docs.POST("/:id/submit", staff, h.Workflow.SubmitWork)
	docs.POST("/:id/forward-leadership", h.Workflow.ForwardToLeadership)
	docs.POST("/:id/approve", leadership, h.Workflow.Approve)
	docs.POST("/:id/approve-header-department", deptLeadership, h.Workflow.ApproveHeaderDepartment)
	docs.POST("/:id/format-correction", h.Workflow.RejectForFormatCorrection)
	docs.POST("/:id/format-corrected", h.Workflow.MarkFormatCorrected)
	docs.POST("/:id/complete", h.Workflow.Complete)
	docs.POST("/:id/publish", clerkOnly, h.Workflow.Publish)
	docs.POST("/:id/reject", h.Workflow.Reject)
	docs.POST("/:id/archive", h.Workflow.Archive)
	docs.POST("/:id/feedback", leadership, h.Workflow.ProvideFeedback)
	docs.POST("/:id/header-department-comment", deptLeadership, h.Workflow.CommentHeaderDepartment)
	docs.POST("/:id/reject-with-attachment", h.Workflow.RejectWithAttachment)

	// Department assignments
	docs.POST("/:id/departments", h.Assignment.Assign)
	docs.GET("/:id/departments", h.Assignment.List)
	docs.GET("/:id/departments/primary", h.Assignment.Primary)
	docs.GET("/:id/departments/collaborating", h.Assignment.Collaborating)
	docs.DELETE("/:id/departments/:deptId", h.Assignment.Remove)

	// Attachments
	docs.POST("/:id/attachments", h.Attachment.Upload)
	protected.GET("/attachments/download-url", h.Attachment.DownloadURL)

	// Departments
	depts := protected.Group("/departments")
	depts.POST("", middleware.RequireAnyRole(domain.RoleAdmin), h.Department.Create)
	depts.GET("", h.Department.List)
	depts.GET("/:id", h.Department.GetByID)
	depts.GET("/:id/children", h.Department.Children)
	depts.PUT("/:id", middleware.RequireAnyRole(domain.RoleAdmin), h.Department.Update)
	depts.DELETE("/:id", middleware.RequireAnyRole(domain.RoleAdmin), h.Department.Delete)

	// Users
	users := protected.Group("/users")
	users.POST("", middleware.RequireAnyRole(domain.RoleAdmin), h.User.Create)
	users.GET("", middleware.RequireAnyRole(domain.RoleAdmin), h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", middleware.RequireAnyRole(domain.RoleAdmin), h.User.Update)
	users.DELETE("/:id", middleware.RequireAnyRole(domain.RoleAdmin), h.User.Deactivate)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.GET("", h.Notification.List)
	notifications.GET("/unread-count", h.Notification.UnreadCount)
	notifications.POST("/mark-read", h.Notification.MarkRead)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboard.GET("", h.Dashboard.Get)
	dashboard.GET("/export", h.Dashboard.Export)

	return r
}
