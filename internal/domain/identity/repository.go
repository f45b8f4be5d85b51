package identity

import (
	"context"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserFilter narrows user listings
type UserFilter struct {
	shared.Filter
	Role     *Role
	IsActive *bool
}

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
