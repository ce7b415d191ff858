package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username     string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null"`
	LastLoginAt  *time.Time    `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// ResetTokenModel is the persistence model for password reset tokens.
type ResetTokenModel struct {
	BaseModel
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	TokenHash string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	UsedAt    *time.Time
}

// TableName returns the table name for GORM
func (ResetTokenModel) TableName() string {
	return "reset_tokens"
}

// ToDomain converts the persistence model to a domain ResetToken entity.
func (m *ResetTokenModel) ToDomain() *identity.ResetToken {
	return &identity.ResetToken{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		TokenHash:  m.TokenHash,
		ExpiresAt:  m.ExpiresAt,
		UsedAt:     m.UsedAt,
	}
}

// FromDomain populates the persistence model from a domain ResetToken entity.
func (m *ResetTokenModel) FromDomain(t *identity.ResetToken) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.UserID = t.UserID
	m.TokenHash = t.TokenHash
	m.ExpiresAt = t.ExpiresAt
	m.UsedAt = t.UsedAt
}

// ResetTokenModelFromDomain creates a new persistence model from a domain ResetToken entity.
func ResetTokenModelFromDomain(t *identity.ResetToken) *ResetTokenModel {
	m := &ResetTokenModel{}
	m.FromDomain(t)
	return m
}
