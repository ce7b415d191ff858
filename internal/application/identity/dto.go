package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/identity"
)

// RegisterInput contains input for user registration
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// LoginInput contains input for user login. SessionID carries the
// anonymous cart to merge when a buyer logs in.
type LoginInput struct {
	Username  string
	Password  string
	SessionID string
}

// UserInfo is the user representation returned to callers
type UserInfo struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Capabilities []string   `json:"capabilities"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// AuthResult is returned from registration and login
type AuthResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	User        UserInfo  `json:"user"`
}

// RequestResetInput contains input for requesting a password reset
type RequestResetInput struct {
	Email string
}

// ConsumeResetInput contains input for completing a password reset
type ConsumeResetInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

func userInfoFromDomain(u *identity.User) UserInfo {
	return UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         string(u.Role),
		Capabilities: u.Role.CapabilityStrings(),
		LastLoginAt:  u.LastLoginAt,
	}
}
