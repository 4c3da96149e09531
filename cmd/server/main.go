package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"docflow/internal/config"
	emailnoop "docflow/internal/email/noop"
	"docflow/internal/email/ses"
	"docflow/internal/handler"
	notifnoop "docflow/internal/notification/noop"
	notifredis "docflow/internal/notification/redis"
	"docflow/internal/port"
	"docflow/internal/repository/postgres"
	"docflow/internal/router"
	"docflow/internal/service"
	"docflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	// Repositories
	documentRepo := postgres.NewDocumentRepo(db)
	historyRepo := postgres.NewHistoryRepo(db)
	departmentRepo := postgres.NewDepartmentRepo(db)
	assignmentRepo := postgres.NewAssignmentRepo(db)
	userRepo := postgres.NewUserRepo(db)
	relationshipRepo := postgres.NewRelationshipRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)
	dashboardRepo := postgres.NewDashboardRepo(db)

	// Notification sink: Redis pub/sub when enabled, otherwise persist-only.
	var notifier port.NotificationSink
	if cfg.Redis.Enabled {
		notifier, err = notifredis.NewPublisher(cfg.Redis.URL, notificationRepo)
		if err != nil {
			return err
		}
		log.Printf("server: notifications publishing to redis")
	} else {
		notifier = notifnoop.NewSink(notificationRepo)
	}

	// Email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSender(ctx, cfg.Email)
		if err != nil {
			return err
		}
		log.Printf("server: email via SES from %s", cfg.Email.FromAddress)
	} else {
		emailSender = emailnoop.NewSender()
	}

	// Attachment storage
	storage, err := s3.NewClient(ctx, cfg.S3)
	if err != nil {
		return err
	}

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	assignmentSvc := service.NewAssignmentService(documentRepo, departmentRepo, assignmentRepo, userRepo, historyRepo, notifier)
	workflowSvc := service.NewWorkflowService(documentRepo, historyRepo, departmentRepo, relationshipRepo, userRepo, assignmentSvc, notifier, emailSender)
	classificationSvc := service.NewClassificationService(documentRepo, historyRepo, userRepo)
	documentSvc := service.NewDocumentService(documentRepo, historyRepo, relationshipRepo)
	departmentSvc := service.NewDepartmentService(departmentRepo)
	userSvc := service.NewUserService(userRepo, departmentRepo)
	notificationSvc := service.NewNotificationService(notificationRepo)
	dashboardSvc := service.NewDashboardService(
		dashboardRepo, userRepo,
		time.Duration(cfg.Dashboard.UpcomingWindowDays)*24*time.Hour,
		cfg.Dashboard.ListLimit,
	)

	engine := router.Setup(authSvc, cfg.CORS.AllowedOrigins, router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Document:     handler.NewDocumentHandler(documentSvc, classificationSvc),
		Workflow:     handler.NewWorkflowHandler(workflowSvc),
		Assignment:   handler.NewAssignmentHandler(assignmentSvc),
		Department:   handler.NewDepartmentHandler(departmentSvc),
		User:         handler.NewUserHandler(userSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
		Attachment:   handler.NewAttachmentHandler(storage, cfg.S3),
		Health:       handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server: listening on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
