package identity

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftbasket/backend/internal/domain/identity"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/cache"
)

// MockResetTokenRepository is a mock implementation of identity.ResetTokenRepository
type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) Save(ctx context.Context, token *identity.ResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockResetTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*identity.ResetToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ResetToken), args.Error(1)
}

func (m *MockResetTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// captureMailer records sent mail for assertions
type captureMailer struct {
	mu   sync.Mutex
	sent []capturedMail
	err  error
}

type capturedMail struct {
	to      string
	subject string
	body    string
}

func (m *captureMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, capturedMail{to: to, subject: subject, body: body})
	return nil
}

func createResetService(userRepo *MockUserRepository, tokenRepo *MockResetTokenRepository, mailer *captureMailer) (*PasswordResetService, *cache.MemoryHandshakeStore) {
	handshake := cache.NewMemoryHandshakeStore()
	svc := NewPasswordResetService(
		userRepo,
		tokenRepo,
		handshake,
		mailer,
		"https://swiftbasket.example",
		zap.NewNop(),
	)
	return svc, handshake
}

func TestPasswordResetService_Request_SendsMailWithToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockResetTokenRepository)
	mailer := &captureMailer{}

	user := createTestUser(t, identity.RoleBuyer)
	userRepo.On("FindByEmail", ctx, "test@example.com").Return(user, nil)
	tokenRepo.On("DeleteByUser", ctx, user.ID).Return(nil)
	tokenRepo.On("Save", ctx, mock.AnythingOfType("*identity.ResetToken")).Return(nil)

	svc, _ := createResetService(userRepo, tokenRepo, mailer)

	require.NoError(t, svc.Request(ctx, RequestResetInput{Email: "test@example.com"}))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "test@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "https://swiftbasket.example/password-reset/confirm?token=")

	// the raw token in the mail must hash to the stored token
	saved := tokenRepo.Calls[1].Arguments.Get(1).(*identity.ResetToken)
	link := mailer.sent[0].body[strings.Index(mailer.sent[0].body, "?token=")+len("?token="):]
	raw := strings.Fields(link)[0]
	assert.Equal(t, saved.TokenHash, identity.HashResetToken(raw))
}

func TestPasswordResetService_Request_UnknownEmailLooksIdentical(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockResetTokenRepository)
	mailer := &captureMailer{}

	userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

	svc, _ := createResetService(userRepo, tokenRepo, mailer)

	require.NoError(t, svc.Request(ctx, RequestResetInput{Email: "nobody@example.com"}))
	assert.Empty(t, mailer.sent)
	tokenRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPasswordResetService_Validate_MarksHandshake(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockResetTokenRepository)

	user := createTestUser(t, identity.RoleBuyer)
	token, raw, err := identity.NewResetToken(user.ID)
	require.NoError(t, err)

	tokenRepo.On("FindByHash", ctx, token.TokenHash).Return(token, nil)

	svc, handshake := createResetService(userRepo, tokenRepo, &captureMailer{})

	require.NoError(t, svc.Validate(ctx, raw))

	marked, err := handshake.Consume(ctx, token.TokenHash)
	require.NoError(t, err)
	assert.True(t, marked)
}

func TestPasswordResetService_Validate_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockResetTokenRepository)

	user := createTestUser(t, identity.RoleBuyer)
	token, raw, err := identity.NewResetToken(user.ID)
	require.NoError(t, err)
	token.ExpiresAt = time.Now().Add(-time.Minute)

	tokenRepo.On("FindByHash", ctx, token.TokenHash).Return(token, nil)
	tokenRepo.On("DeleteByUser", ctx, user.ID).Return(nil)

	svc, _ := createResetService(userRepo, tokenRepo, &captureMailer{})

	err = svc.Validate(ctx, raw)
	require.Error(t, err)
	assert.Equal(t, shared.ErrTokenExpired, err)

	// an expired token is removed as soon as it is seen
	tokenRepo.AssertCalled(t, "DeleteByUser", ctx, user.ID)
}

func TestPasswordResetService_Validate_UnknownToken(t *testing.T) {
	ctx := context.Background()
	tokenRepo := new(MockResetTokenRepository)
	tokenRepo.On("FindByHash", ctx, mock.AnythingOfType("string")).Return(nil, shared.ErrNotFound)

	svc, _ := createResetService(new(MockUserRepository), tokenRepo, &captureMailer{})

	err := svc.Validate(ctx, "not-a-real-token")
	require.Error(t, err)
	assert.Equal(t, shared.ErrTokenInvalid, err)
}

func TestPasswordResetService_Consume_ChangesPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockResetTokenRepository)

	user := createTestUser(t, identity.RoleBuyer)
	token, raw, err := identity.NewResetToken(user.ID)
	require.NoError(t, err)

	tokenRepo.On("FindByHash", ctx, token.TokenHash).Return(token, nil)
	tokenRepo.On("DeleteByUser", ctx, user.ID).Return(nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc, _ := createResetService(userRepo, tokenRepo, &captureMailer{})

	role, err := svc.Consume(ctx, ConsumeResetInput{
		Token:           raw,
		NewPassword:     "BrandNewPass1",
		ConfirmPassword: "BrandNewPass1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(identity.RoleBuyer), role)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("BrandNewPass1")))
	assert.True(t, token.IsUsed())
	tokenRepo.AssertCalled(t, "DeleteByUser", ctx, user.ID)
}

func TestPasswordResetService_Consume_PasswordMismatchKeepsToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockResetTokenRepository)

	user := createTestUser(t, identity.RoleBuyer)
	_, raw, err := identity.NewResetToken(user.ID)
	require.NoError(t, err)

	svc, _ := createResetService(userRepo, tokenRepo, &captureMailer{})

	_, err = svc.Consume(ctx, ConsumeResetInput{
		Token:           raw,
		NewPassword:     "BrandNewPass1",
		ConfirmPassword: "SomethingElse1",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PASSWORD_MISMATCH", domainErr.Code)

	// the token survives the failed attempt untouched
	tokenRepo.AssertNotCalled(t, "FindByHash", mock.Anything, mock.Anything)
	tokenRepo.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPasswordResetService_Consume_UsedTokenRejected(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockResetTokenRepository)

	user := createTestUser(t, identity.RoleBuyer)
	token, raw, err := identity.NewResetToken(user.ID)
	require.NoError(t, err)
	require.NoError(t, token.Consume(time.Now()))

	tokenRepo.On("FindByHash", ctx, token.TokenHash).Return(token, nil)

	svc, _ := createResetService(userRepo, tokenRepo, &captureMailer{})

	_, err = svc.Consume(ctx, ConsumeResetInput{Token: raw, NewPassword: "BrandNewPass1", ConfirmPassword: "BrandNewPass1"})
	require.Error(t, err)
	assert.Equal(t, shared.ErrTokenInvalid, err)
}

func TestPasswordResetService_Consume_ShortPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := createResetService(new(MockUserRepository), new(MockResetTokenRepository), &captureMailer{})

	_, err := svc.Consume(ctx, ConsumeResetInput{Token: "whatever", NewPassword: "short", ConfirmPassword: "short"})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PASSWORD_TOO_SHORT", domainErr.Code)
}
