package identity

import (
	"context"
	"testing"
	"time"

	"github.com/amani/backend/internal/domain/identity"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/infrastructure/auth"
	"github.com/amani/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct-horse-battery"

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-auth-service",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "amani-test",
		MaxRefreshCount:        5,
	})
}

type authFixture struct {
	userRepo  *MockUserRepository
	blacklist *auth.InMemoryTokenBlacklist
	service   *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:  new(MockUserRepository),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	f.service = NewAuthService(f.userRepo, newTestJWTService(), f.blacklist, nil, nil)
	return f
}

func activeUser(t *testing.T) *identity.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	u, err := identity.NewUser("finance@amani.org", hash, "Amina Okello", identity.RoleFinanceOfficer)
	require.NoError(t, err)
	return u
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t)

	f.userRepo.On("FindByEmail", mock.Anything, "finance@amani.org").Return(user, nil)
	f.userRepo.On("Save", mock.Anything, user).Return(nil)

	result, err := f.service.Login(context.Background(), LoginInput{
		Email:    "  Finance@Amani.org ",
		Password: testPassword,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, identity.RoleFinanceOfficer, result.User.Role)
	assert.NotNil(t, user.LastLoginAt)
	f.userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t)

	f.userRepo.On("FindByEmail", mock.Anything, "finance@amani.org").Return(user, nil)

	_, err := f.service.Login(context.Background(), LoginInput{
		Email:    "finance@amani.org",
		Password: "not-the-password",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLogin_UnknownEmailUsesSameError(t *testing.T) {
	f := newAuthFixture()

	f.userRepo.On("FindByEmail", mock.Anything, "nobody@amani.org").Return(nil, shared.ErrNotFound)

	_, err := f.service.Login(context.Background(), LoginInput{
		Email:    "nobody@amani.org",
		Password: testPassword,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t)
	require.NoError(t, user.Deactivate())

	f.userRepo.On("FindByEmail", mock.Anything, "finance@amani.org").Return(user, nil)

	_, err := f.service.Login(context.Background(), LoginInput{
		Email:    "finance@amani.org",
		Password: testPassword,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestRefreshToken_Success(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t)

	f.userRepo.On("FindByEmail", mock.Anything, "finance@amani.org").Return(user, nil)
	f.userRepo.On("Save", mock.Anything, user).Return(nil)
	f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	login, err := f.service.Login(context.Background(), LoginInput{
		Email:    "finance@amani.org",
		Password: testPassword,
	})
	require.NoError(t, err)

	result, err := f.service.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestRefreshToken_DeactivatedUser(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t)

	f.userRepo.On("FindByEmail", mock.Anything, "finance@amani.org").Return(user, nil)
	f.userRepo.On("Save", mock.Anything, user).Return(nil)
	f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	login, err := f.service.Login(context.Background(), LoginInput{
		Email:    "finance@amani.org",
		Password: testPassword,
	})
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())

	_, err = f.service.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestRefreshToken_Garbage(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: "not.a.token",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestLogout_BlacklistsToken(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()
	jti := uuid.New().String()

	err := f.service.Logout(context.Background(), LogoutInput{
		UserID:   userID,
		TokenJTI: jti,
		TokenTTL: time.Hour,
	})

	require.NoError(t, err)
	revoked, err := f.blacklist.IsBlacklisted(context.Background(), jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestChangePassword_Success(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t)
	oldHash := user.PasswordHash

	f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.userRepo.On("Save", mock.Anything, user).Return(nil)

	err := f.service.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: testPassword,
		NewPassword: "a-brand-new-passphrase",
	})

	require.NoError(t, err)
	assert.NotEqual(t, oldHash, user.PasswordHash)
	assert.True(t, auth.VerifyPassword(user.PasswordHash, "a-brand-new-passphrase"))

	// Existing tokens are invalidated from this point on
	invalidated, err := f.blacklist.IsUserTokenInvalidated(context.Background(), user.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, invalidated)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	f := newAuthFixture()
	user := activeUser(t)

	f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := f.service.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "wrong-old-password",
		NewPassword: "a-brand-new-passphrase",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
