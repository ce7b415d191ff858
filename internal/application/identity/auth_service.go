package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftbasket/backend/internal/domain/identity"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/auth"
)

// bcryptCost is deliberately above the library default
const bcryptCost = 12

// CartMerger folds an anonymous session cart into a user's stored
// cart. Implemented by the cart application service.
type CartMerger interface {
	Merge(ctx context.Context, sessionID string, userID uuid.UUID) error
}

// AuthService handles registration, login and logout
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	cartMerger CartMerger
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. blacklist and
// cartMerger may be nil, in which case logout is a no-op and login
// skips cart merging.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	cartMerger CartMerger,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		cartMerger: cartMerger,
		logger:     logger,
	}
}

// Register creates a new user account and issues an access token.
// Username and email uniqueness is enforced by database constraints,
// so concurrent registrations cannot race past a pre-check.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	if len(input.Password) < identity.MinPasswordLength {
		return nil, shared.NewDomainError("PASSWORD_TOO_SHORT", "Password is too short")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.ErrInternalError
	}

	user, err := identity.NewUser(input.Username, input.Email, string(hash), role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, shared.NewDomainError("USER_EXISTS", "Username or email is already taken")
		}
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return s.issueToken(user)
}

// Login authenticates a user and issues an access token. When a buyer
// logs in with a session cart, the session cart is merged into the
// stored cart.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, invalidCredentials()
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// login still succeeds, the timestamp is best effort
		s.logger.Warn("Failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	if s.cartMerger != nil && user.IsBuyer() && input.SessionID != "" {
		if err := s.cartMerger.Merge(ctx, input.SessionID, user.ID); err != nil {
			s.logger.Warn("Failed to merge session cart",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return s.issueToken(user)
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil || claims.ID == "" {
		return nil
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke token",
			zap.String("token_id", claims.ID),
			zap.Error(err),
		)
		return shared.NewDomainError("LOGOUT_FAILED", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := userInfoFromDomain(user)
	return &info, nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResult, error) {
	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         string(user.Role),
		Capabilities: user.Role.CapabilityStrings(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.ErrInternalError
	}

	return &AuthResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        userInfoFromDomain(user),
	}, nil
}

// credential failures are indistinguishable on purpose
func invalidCredentials() error {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
}
