package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"immunization-tracker/config"
	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
	"immunization-tracker/internal/infrastructure/cache"
	"immunization-tracker/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	uc       *authUsecase
	sqlMock  sqlmock.Sqlmock
	users    *mockUserRepository
	audit    *mockAuditService
	jwt      *jwt.JWTService
	redis    *miniredis.Miniredis
	sessions *cache.SessionStore
}

func newAuthFixture(t *testing.T) *authFixture {
	db, sqlMock := setupMockDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &authFixture{
		sqlMock:  sqlMock,
		users:    new(mockUserRepository),
		audit:    new(mockAuditService),
		jwt:      jwt.NewJWTService(config.JWTConfig{Secret: "test", AccessExpiry: 15 * time.Minute, RefreshExpiry: time.Hour}),
		redis:    mr,
		sessions: cache.NewSessionStore(client),
	}
	f.uc = NewAuthUsecase(db, quietLogger(), f.users, f.audit, f.jwt, f.sessions).(*authUsecase)
	f.uc.hashCost = bcrypt.MinCost
	return f
}

func hashPIN(t *testing.T, pin string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthUsecase_Register(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()

	f.sqlMock.ExpectBegin()
	f.users.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { args.Get(2).(*entity.User).ID = userID }).
		Return(nil)
	f.audit.On("LogCreate", mock.Anything, mock.Anything, &userID, entity.AuditActionUserRegister, "user", userID.String(), mock.Anything).
		Return(nil)
	f.sqlMock.ExpectCommit()

	resp, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		Email:      " Nurse@Example.org ",
		PIN:        "123456",
		PINConfirm: "123456",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "nurse@example.org", resp.Email)

	created := f.users.Calls[0].Arguments.Get(2).(*entity.User)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PIN), []byte("123456")))
	assert.NotEqual(t, "123456", created.PIN)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	f.audit.AssertExpectations(t)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	f.sqlMock.ExpectBegin()
	f.users.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	f.sqlMock.ExpectRollback()

	_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{Email: "a@b.co", PIN: "123456", PINConfirm: "123456"})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	assert.Empty(t, f.audit.Calls)
}

func TestAuthUsecase_Register_PINMismatch(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{Email: "a@b.co", PIN: "123456", PINConfirm: "123457"})

	assert.ErrorIs(t, err, ErrPINMismatch)
	assert.Empty(t, f.users.Calls)
}

func TestAuthUsecase_Login(t *testing.T) {
	f := newAuthFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "nurse@example.org", PIN: hashPIN(t, "123456")}
	f.users.On("FindByEmail", mock.Anything, mock.Anything, "nurse@example.org").Return(user, nil)

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "NURSE@example.org", PIN: "123456"})
	require.NoError(t, err)
	assert.Equal(t, int64(900), tokens.ExpiresIn)

	claims, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	allowed, err := f.sessions.AccessAllowed(context.Background(), user.ID, claims.TokenID)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Len(t, f.redis.Keys(), 2)
}

func TestAuthUsecase_Login_Rejects(t *testing.T) {
	f := newAuthFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "nurse@example.org", PIN: hashPIN(t, "123456")}
	f.users.On("FindByEmail", mock.Anything, mock.Anything, "nurse@example.org").Return(user, nil)
	f.users.On("FindByEmail", mock.Anything, mock.Anything, "ghost@example.org").Return(nil, nil)

	tests := []struct {
		name  string
		email string
		pin   string
	}{
		{"wrong pin", "nurse@example.org", "654321"},
		{"pin prefix", "nurse@example.org", "12345"},
		{"unknown email", "ghost@example.org", "123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: tt.email, PIN: tt.pin})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
	assert.Empty(t, f.redis.Keys())
}

func TestAuthUsecase_Login_RepositoryError(t *testing.T) {
	f := newAuthFixture(t)
	boom := errors.New("connection reset")
	f.users.On("FindByEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

	_, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.co", PIN: "123456"})
	assert.ErrorIs(t, err, boom)
}

func TestAuthUsecase_RefreshToken_RotatesOnce(t *testing.T) {
	f := newAuthFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "nurse@example.org", PIN: hashPIN(t, "123456")}
	f.users.On("FindByEmail", mock.Anything, mock.Anything, user.Email).Return(user, nil)

	first, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, PIN: "123456"})
	require.NoError(t, err)

	second, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthUsecase_RefreshToken_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	access, _, err := f.jwt.GenerateAccessToken(uuid.New(), "a@b.co")
	require.NoError(t, err)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: access})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthUsecase_Logout(t *testing.T) {
	f := newAuthFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "nurse@example.org", PIN: hashPIN(t, "123456")}
	f.users.On("FindByEmail", mock.Anything, mock.Anything, user.Email).Return(user, nil)

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, PIN: "123456"})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(context.Background(), user.ID, claims.TokenID, tokens.RefreshToken))

	assert.Empty(t, f.redis.Keys())
	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthUsecase_Logout_IgnoresForeignRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	owner := uuid.New()
	require.NoError(t, f.sessions.Allow(context.Background(), owner, "a1", time.Minute, "r1", time.Hour))
	foreign, _, err := f.jwt.GenerateRefreshToken(owner, "owner@example.org")
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(context.Background(), uuid.New(), "other", foreign))
	assert.Len(t, f.redis.Keys(), 2)
}

func TestAuthUsecase_GetCurrentUser(t *testing.T) {
	f := newAuthFixture(t)
	id := uuid.New()
	f.users.On("FindByID", mock.Anything, mock.Anything, id).Return(&entity.User{ID: id, Email: "a@b.co"}, nil)
	f.users.On("FindByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	user, err := f.uc.GetCurrentUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", user.Email)

	_, err = f.uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
