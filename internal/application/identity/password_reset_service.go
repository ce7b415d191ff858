package identity

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftbasket/backend/internal/domain/identity"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/cache"
	"github.com/swiftbasket/backend/internal/infrastructure/mail"
)

// PasswordResetService handles the forgot-password flow: request a
// token by email, validate it, then consume it with a new password.
type PasswordResetService struct {
	userRepo  identity.UserRepository
	tokenRepo identity.ResetTokenRepository
	handshake cache.HandshakeStore
	mailer    mail.Mailer
	baseURL   string
	logger    *zap.Logger
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	userRepo identity.UserRepository,
	tokenRepo identity.ResetTokenRepository,
	handshake cache.HandshakeStore,
	mailer mail.Mailer,
	baseURL string,
	logger *zap.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		handshake: handshake,
		mailer:    mailer,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// Request mints a reset token for the account behind the email and
// mails the reset link. The response is identical whether or not the
// address belongs to an account, so the endpoint cannot be used to
// probe for registered emails.
func (s *PasswordResetService) Request(ctx context.Context, input RequestResetInput) error {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Info("Password reset requested for unknown email")
			return nil
		}
		s.logger.Error("Failed to look up user by email", zap.Error(err))
		return shared.ErrInternalError
	}

	// a fresh request invalidates any earlier outstanding token
	if err := s.tokenRepo.DeleteByUser(ctx, user.ID); err != nil {
		s.logger.Error("Failed to clear previous reset tokens",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return shared.ErrInternalError
	}

	token, raw, err := identity.NewResetToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to mint reset token", zap.Error(err))
		return shared.ErrInternalError
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		s.logger.Error("Failed to save reset token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return shared.ErrInternalError
	}

	link := s.baseURL + "/password-reset/confirm?token=" + raw
	body := mail.ResetBody(user.Username, link, identity.ResetTokenTTL)
	if err := s.mailer.Send(ctx, user.Email, mail.ResetSubject, body); err != nil {
		// still answer as if the mail went out
		s.logger.Error("Failed to send reset mail",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil
	}

	s.logger.Info("Password reset mail sent", zap.String("user_id", user.ID.String()))
	return nil
}

// Validate checks a raw token without consuming it and records the
// successful check so the confirm step can verify it saw a validated
// token.
func (s *PasswordResetService) Validate(ctx context.Context, rawToken string) error {
	token, err := s.findValidToken(ctx, rawToken)
	if err != nil {
		return err
	}

	ttl := time.Until(token.ExpiresAt)
	if err := s.handshake.Mark(ctx, token.TokenHash, ttl); err != nil {
		s.logger.Warn("Failed to mark reset handshake", zap.Error(err))
	}
	return nil
}

// Consume spends a reset token and sets the new password. The token is
// single use: once consumed it never validates again, and all other
// outstanding tokens for the user are discarded. A password mismatch
// leaves the token intact so the form can be resubmitted. The user's
// role is returned so clients can route to the matching login page.
func (s *PasswordResetService) Consume(ctx context.Context, input ConsumeResetInput) (string, error) {
	if len(input.NewPassword) < identity.MinPasswordLength {
		return "", shared.NewDomainError("PASSWORD_TOO_SHORT", "Password is too short")
	}
	if input.NewPassword != input.ConfirmPassword {
		return "", shared.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match")
	}

	token, err := s.findValidToken(ctx, input.Token)
	if err != nil {
		return "", err
	}

	// best effort, the token itself is the authority
	if _, err := s.handshake.Consume(ctx, token.TokenHash); err != nil {
		s.logger.Warn("Failed to consume reset handshake", zap.Error(err))
	}

	if err := token.Consume(time.Now()); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		s.logger.Error("Failed to load user for reset",
			zap.String("user_id", token.UserID.String()),
			zap.Error(err),
		)
		return "", shared.ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return "", shared.ErrInternalError
	}
	if err := user.ChangePassword(string(hash)); err != nil {
		return "", err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save new password",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", shared.ErrInternalError
	}

	if err := s.tokenRepo.DeleteByUser(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to clear reset tokens after use",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return string(user.Role), nil
}

func (s *PasswordResetService) findValidToken(ctx context.Context, rawToken string) (*identity.ResetToken, error) {
	if rawToken == "" {
		return nil, shared.ErrTokenInvalid
	}

	token, err := s.tokenRepo.FindByHash(ctx, identity.HashResetToken(rawToken))
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrTokenInvalid
		}
		s.logger.Error("Failed to look up reset token", zap.Error(err))
		return nil, shared.ErrInternalError
	}

	if token.IsUsed() {
		return nil, shared.ErrTokenInvalid
	}
	if token.IsExpired(time.Now()) {
		// an expired token is dead weight, drop it right away
		if err := s.tokenRepo.DeleteByUser(ctx, token.UserID); err != nil {
			s.logger.Warn("Failed to delete expired reset token",
				zap.String("user_id", token.UserID.String()),
				zap.Error(err),
			)
		}
		return nil, shared.ErrTokenExpired
	}
	return token, nil
}
