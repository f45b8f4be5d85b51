package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/identity"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateUserCommand carries the input for creating a user account
type CreateUserCommand struct {
	Email    string
	Password string
	FullName string
	Role     identity.Role
}

// UserService manages user accounts. Role and activation changes revoke
// the affected user's outstanding tokens.
type UserService struct {
	userRepo     identity.UserRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *UserService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "USER", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log",
			zap.String("user_id", entityID.String()),
			zap.Error(err))
	}
}

// revokeTokens invalidates every outstanding token for the user
func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil || s.jwtService == nil {
		return
	}
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), ttl); err != nil {
		s.logger.Warn("failed to revoke user tokens",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// CreateUser registers a new account. Email is unique across users.
func (s *UserService) CreateUser(ctx context.Context, cmd CreateUserCommand, actorID uuid.UUID) (*identity.User, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(email, hash, cmd.FullName, cmd.Role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionCreate, user.ID, user.Email)
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// ListUsers returns a filtered page of users
func (s *UserService) ListUsers(ctx context.Context, filter identity.UserFilter) (shared.Paginated[*identity.User], error) {
	items, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[*identity.User]{}, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[*identity.User]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateProfile changes a user's display name
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, fullName string, actorID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(fullName); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, user.ID, "profile updated")
	return user, nil
}

// ChangeRole assigns a different role to the user and revokes their tokens
// so the old role cannot be used further
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, role identity.Role, actorID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.revokeTokens(ctx, user.ID)
	s.logActivity(ctx, actorID, audit.ActionUpdate, user.ID, "role changed to "+string(role))
	return user, nil
}

// ResetPassword sets a new password without requiring the old one and
// revokes the user's tokens. Intended for administrators.
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string, actorID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := user.SetPasswordHash(hash); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.revokeTokens(ctx, user.ID)
	s.logActivity(ctx, actorID, audit.ActionUpdate, user.ID, "password reset")
	return nil
}

// DeactivateUser disables the account and revokes its tokens. Users cannot
// deactivate themselves.
func (s *UserService) DeactivateUser(ctx context.Context, id, actorID uuid.UUID) (*identity.User, error) {
	if id == actorID {
		return nil, shared.NewDomainError("INVALID_STATE", "Users cannot deactivate their own account")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.revokeTokens(ctx, user.ID)
	s.logActivity(ctx, actorID, audit.ActionUpdate, user.ID, "deactivated")
	return user, nil
}

// ActivateUser re-enables a deactivated account
func (s *UserService) ActivateUser(ctx context.Context, id, actorID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, user.ID, "activated")
	return user, nil
}
