package identity

import (
	"strings"
	"time"

	"github.com/amani/backend/internal/domain/shared"
)

// Role is the authorization role assigned to a user
type Role string

const (
	RoleProgramsManager Role = "PROGRAMS_MANAGER"
	RoleFinanceOfficer  Role = "FINANCE_OFFICER"
	RoleProjectOfficer  Role = "PROJECT_OFFICER"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleProgramsManager, RoleFinanceOfficer, RoleProjectOfficer:
		return true
	}
	return false
}

// User is an authenticated system account. Email is unique.
type User struct {
	shared.BaseAggregateRoot
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// NewUser creates a new active user. The password hash must already be
// computed by the caller.
func NewUser(email, passwordHash, fullName string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		FullName:          fullName,
		Role:              role,
		IsActive:          true,
	}, nil
}

// ChangeRole assigns a different role
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// SetPasswordHash replaces the stored credential hash
func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// UpdateProfile changes display fields
func (u *User) UpdateProfile(fullName string) error {
	if fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	u.FullName = fullName
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Deactivate disables the account. Inactive users cannot authenticate.
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("INVALID_STATE", "User is already inactive")
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	return nil
}

// Activate re-enables a disabled account
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("INVALID_STATE", "User is already active")
	}
	u.IsActive = true
	u.UpdatedAt = time.Now()
	return nil
}
