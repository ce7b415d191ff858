package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

const (
	// MaxUsernameLength is the maximum allowed username length
	MaxUsernameLength = 100
	// MinUsernameLength is the minimum allowed username length
	MinUsernameLength = 3
	// MaxEmailLength is the maximum allowed email length
	MaxEmailLength = 200
	// MinPasswordLength is the minimum allowed plaintext password length
	MinPasswordLength = 8
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents an account in the marketplace. A user holds exactly
// one role: vendors own a store and list products, buyers shop.
type User struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	LastLoginAt  *time.Time
}

// NewUser creates a new user with a pre-hashed password
func NewUser(username, email, passwordHash string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role must be vendor or buyer")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password hash is required")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              role,
	}, nil
}

// ChangePassword replaces the stored credential hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_INPUT", "Password hash is required")
	}
	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// IsVendor reports whether the user holds the vendor role
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// IsBuyer reports whether the user holds the buyer role
func (u *User) IsBuyer() bool {
	return u.Role == RoleBuyer
}

// Capabilities returns the capability set granted by the user's role
func (u *User) Capabilities() []Capability {
	return u.Role.Capabilities()
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_INPUT", "Username is required")
	}
	if len(username) < MinUsernameLength {
		return shared.NewDomainError("INVALID_INPUT", "Username is too short")
	}
	if len(username) > MaxUsernameLength {
		return shared.NewDomainError("INVALID_INPUT", "Username is too long")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_INPUT", "Email is required")
	}
	if len(email) > MaxEmailLength {
		return shared.NewDomainError("INVALID_INPUT", "Email is too long")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_INPUT", "Email format is invalid")
	}
	return nil
}
