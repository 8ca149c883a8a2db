package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

func newTestAuthService(userRepo identity.UserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "markethub-test",
		MaxRefreshCount:        10,
	})
	return NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func newTestUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("vendor@example.com", "Test Vendor", "s3cretpass", role)
	require.NoError(t, err)
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	mockRepo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := service.Register(ctx, RegisterInput{
		Email:    "new@example.com",
		Name:     "New Vendor",
		Password: "password1",
		Role:     identity.RoleVendor,
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Equal(t, identity.RoleVendor, resp.Role)
	assert.Equal(t, identity.UserStatusActive, resp.Status)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_AdminRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	resp, err := service.Register(context.Background(), RegisterInput{
		Email:    "admin@example.com",
		Name:     "Wannabe Admin",
		Password: "password1",
		Role:     identity.RoleAdmin,
	})

	assert.Nil(t, resp)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	mockRepo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

	resp, err := service.Register(ctx, RegisterInput{
		Email:    "taken@example.com",
		Name:     "Someone",
		Password: "password1",
		Role:     identity.RoleCustomer,
	})

	assert.Nil(t, resp)
	assert.Error(t, err)
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	user := newTestUser(t, identity.RoleVendor)
	mockRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

	result, err := service.Login(ctx, LoginInput{Email: user.Email, Password: "s3cretpass"})

	require.NoError(t, err)
	assert.Equal(t, user.Email, result.User.Email)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	user := newTestUser(t, identity.RoleVendor)
	mockRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

	result, err := service.Login(ctx, LoginInput{Email: user.Email, Password: "wrong"})

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	mockRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

	result, err := service.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever1"})

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	user := newTestUser(t, identity.RoleCustomer)
	user.Disable()
	mockRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

	result, err := service.Login(ctx, LoginInput{Email: user.Email, Password: "s3cretpass"})

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	user := newTestUser(t, identity.RoleVendor)
	mockRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	mockRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	login, err := service.Login(ctx, LoginInput{Email: user.Email, Password: "s3cretpass"})
	require.NoError(t, err)

	tokens, err := service.Refresh(ctx, login.Tokens.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	user := newTestUser(t, identity.RoleVendor)
	mockRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	mockRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	login, err := service.Login(ctx, LoginInput{Email: user.Email, Password: "s3cretpass"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, login.Tokens.RefreshToken))

	tokens, err := service.Refresh(ctx, login.Tokens.RefreshToken)

	assert.Nil(t, tokens)
	assert.Error(t, err)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	service := newTestAuthService(new(MockUserRepository))

	tokens, err := service.Refresh(context.Background(), "garbage")

	assert.Nil(t, tokens)
	assert.Error(t, err)
}
