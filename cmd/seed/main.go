// Command seed creates the initial admin account so a fresh deployment has a
// user that can log in and manage the rest.
// Usage: go run ./cmd/seed -email admin@example.com -password secret
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"docflow/internal/config"
	"docflow/internal/domain"
	"docflow/internal/repository/postgres"
	"docflow/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	email := flag.String("email", "admin@docflow.local", "admin email")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Administrator", "admin display name")
	flag.Parse()

	if *password == "" {
		return errors.New("seed: -password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	users := service.NewUserService(userRepo, postgres.NewDepartmentRepo(db))

	ctx := context.Background()
	if existing, err := userRepo.GetByEmail(ctx, *email); err == nil {
		log.Printf("seed: admin %s already exists (%s), nothing to do", existing.Email, existing.ID)
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	user, err := users.CreateUser(ctx, service.CreateUserInput{
		Email:    *email,
		Password: *password,
		FullName: *name,
		Roles:    []string{domain.RoleAdmin},
	})
	if err != nil {
		return err
	}
	log.Printf("seed: created admin %s (%s)", user.Email, user.ID)
	return nil
}
