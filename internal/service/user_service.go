package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// CreateUserInput carries the parameters for creating a user.
type CreateUserInput struct {
	Email        string
	Password     string
	FullName     string
	Roles        []string
	DepartmentID *uuid.UUID
}

// UpdateUserInput carries the mutable user fields. Nil pointers mean "leave
// unchanged".
type UpdateUserInput struct {
	Email        *string
	Password     *string
	FullName     *string
	Roles        []string
	DepartmentID *uuid.UUID
	IsActive     *bool
}

// UserService owns user management.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
	DeactivateUser(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	userRepo       port.UserRepository
	departmentRepo port.DepartmentRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo port.UserRepository, departmentRepo port.DepartmentRepository) UserService {
	return &userService{userRepo: userRepo, departmentRepo: departmentRepo}
}

func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *input.DepartmentID); err != nil {
			return nil, fmt.Errorf("userService.CreateUser: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("userService.CreateUser: hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Roles:        input.Roles,
		DepartmentID: input.DepartmentID,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("userService.CreateUser: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("userService.GetUser: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("userService.ListUsers: %w", err)
	}
	return users, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("userService.UpdateUser: %w", err)
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("userService.UpdateUser: hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Roles != nil {
		user.Roles = input.Roles
	}
	if input.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *input.DepartmentID); err != nil {
			return nil, fmt.Errorf("userService.UpdateUser: %w", err)
		}
		user.DepartmentID = input.DepartmentID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("userService.UpdateUser: %w", err)
	}
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("userService.DeactivateUser: %w", err)
	}
	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("userService.DeactivateUser: %w", err)
	}
	return nil
}
