package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"docflow/internal/config"
	"docflow/internal/domain"
	"docflow/internal/service"
	"docflow/mocks"
)

func newAuthService(t *testing.T) (service.AuthService, *mocks.MockUserRepo) {
	t.Helper()
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:             "test-secret",
		Issuer:             "docflow-test",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	return svc, userRepo
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "clerk@agency.gov",
		FullName:     "A Clerk",
		PasswordHash: string(hash),
		Roles:        pq.StringArray{domain.RoleClerk},
		IsActive:     true,
	}
}

func TestLogin(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := activeUser(t, "hunter2")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, got, err := svc.Login(context.Background(), user.Email, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, []string{domain.RoleClerk}, claims.Roles)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := activeUser(t, "hunter2")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, _, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc, userRepo := newAuthService(t)
	userRepo.On("GetByEmail", mock.Anything, "nobody@agency.gov").
		Return(nil, domain.ErrUserNotFound)

	_, _, err := svc.Login(context.Background(), "nobody@agency.gov", "hunter2")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := activeUser(t, "hunter2")
	user.IsActive = false
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, _, err := svc.Login(context.Background(), user.Email, "hunter2")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestRefresh(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := activeUser(t, "hunter2")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, _, err := svc.Login(context.Background(), user.Email, "hunter2")
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := activeUser(t, "hunter2")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, _, err := svc.Login(context.Background(), user.Email, "hunter2")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_DeactivatedSinceIssue(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := activeUser(t, "hunter2")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, _, err := svc.Login(context.Background(), user.Email, "hunter2")
	require.NoError(t, err)

	user.IsActive = false
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := activeUser(t, "hunter2")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, _, err := svc.Login(context.Background(), user.Email, "hunter2")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
