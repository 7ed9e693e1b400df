package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/config"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/service"
	"helpdesk-system/pkg/utils"
)

type fakeUserRepo struct {
	users   map[uint64]*entities.User
	history map[uint64][]entities.PasswordHistoryEntry
	nextID  uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uint64]*entities.User),
		history: make(map[uint64][]entities.PasswordHistoryEntry),
		nextID:  1,
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, payload dto.RegisterDTO, passwordHash string) (uint64, error) {
	for _, u := range f.users {
		if u.Email == payload.Email {
			return 0, apperrors.NewConflictError("пользователь с таким email уже существует")
		}
	}
	id := f.nextID
	f.nextID++
	f.users[id] = &entities.User{
		ID:      id,
		Name:    payload.Name,
		Surname: payload.Surname,
		Email:   payload.Email,

		Position: payload.Position,
		Password: passwordHash,
	}
	return id, nil
}

func (f *fakeUserRepo) FindUserByID(_ context.Context, id uint64) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID uint64, newHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	f.history[userID] = append([]entities.PasswordHistoryEntry{{UserID: userID, Password: u.Password}}, f.history[userID]...)
	u.Password = newHash
	return nil
}

func (f *fakeUserRepo) FindPasswordHistory(_ context.Context, userID uint64, limit int) ([]entities.PasswordHistoryEntry, error) {
	entries := f.history[userID]
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (f *fakeUserRepo) FindUserRoles(_ context.Context, _ uint64) ([]string, error) {
	return []string{"user"}, nil
}

type fakeAuthCache struct {
	attempts map[string]int64
	locked   map[string]bool
}

func newFakeAuthCache() *fakeAuthCache {
	return &fakeAuthCache{
		attempts: make(map[string]int64),
		locked:   make(map[string]bool),
	}
}

func (f *fakeAuthCache) IncrementLoginAttempts(_ context.Context, email string, _ time.Duration) (int64, error) {
	f.attempts[email]++
	return f.attempts[email], nil
}

func (f *fakeAuthCache) ResetLoginAttempts(_ context.Context, email string) error {
	delete(f.attempts, email)
	return nil
}

func (f *fakeAuthCache) LockAccount(_ context.Context, email string, _ time.Duration) error {
	f.locked[email] = true
	return nil
}

func (f *fakeAuthCache) IsAccountLocked(_ context.Context, email string) (bool, error) {
	return f.locked[email], nil
}

type authServiceEnv struct {
	svc      AuthServiceInterface
	userRepo *fakeUserRepo
	cache    *fakeAuthCache
}

func newAuthServiceEnv(t *testing.T) *authServiceEnv {
	t.Helper()

	userRepo := newFakeUserRepo()
	cache := newFakeAuthCache()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour)

	svc := NewAuthService(userRepo, cache, jwtSvc,
		config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute},
		zap.NewNop(),
	)
	return &authServiceEnv{svc: svc, userRepo: userRepo, cache: cache}
}

func (env *authServiceEnv) registerUser(t *testing.T, email, password string) uint64 {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	id, err := env.userRepo.CreateUser(context.Background(), dto.RegisterDTO{
		Name: "Тест", Surname: "Тестов", Email: email,
	}, hash)
	require.NoError(t, err)
	return id
}

func TestLoginIssuesTokenPair(t *testing.T) {
	env := newAuthServiceEnv(t)
	env.registerUser(t, "user@example.com", "correct-horse-1")

	res, err := env.svc.Login(context.Background(), dto.LoginDTO{
		Email: "user@example.com", Password: "correct-horse-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "user@example.com", res.User.Email)
}

func TestLoginWrongPasswordCountsAttempt(t *testing.T) {
	env := newAuthServiceEnv(t)
	env.registerUser(t, "user@example.com", "correct-horse-1")

	_, err := env.svc.Login(context.Background(), dto.LoginDTO{
		Email: "user@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, int64(1), env.cache.attempts["user@example.com"])
}

func TestLoginLockoutAfterMaxAttempts(t *testing.T) {
	env := newAuthServiceEnv(t)
	env.registerUser(t, "user@example.com", "correct-horse-1")

	for i := 0; i < 3; i++ {
		_, err := env.svc.Login(context.Background(), dto.LoginDTO{
			Email: "user@example.com", Password: "wrong",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	require.True(t, env.cache.locked["user@example.com"])

	// Даже верный пароль не проходит, пока действует блокировка.
	_, err := env.svc.Login(context.Background(), dto.LoginDTO{
		Email: "user@example.com", Password: "correct-horse-1",
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	env := newAuthServiceEnv(t)
	env.registerUser(t, "user@example.com", "correct-horse-1")

	res, err := env.svc.Login(context.Background(), dto.LoginDTO{
		Email: "user@example.com", Password: "correct-horse-1",
	})
	require.NoError(t, err)

	_, err = env.svc.RefreshToken(context.Background(), dto.RefreshTokenDTO{RefreshToken: res.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)

	refreshed, err := env.svc.RefreshToken(context.Background(), dto.RefreshTokenDTO{RefreshToken: res.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestChangePasswordRejectsReuse(t *testing.T) {
	env := newAuthServiceEnv(t)
	userID := env.registerUser(t, "user@example.com", "first-password-1")

	require.NoError(t, env.svc.ChangePassword(context.Background(), userID, dto.ChangePasswordDTO{
		OldPassword: "first-password-1",
		NewPassword: "second-password-2",
	}))

	t.Run("совпадение с текущим", func(t *testing.T) {
		err := env.svc.ChangePassword(context.Background(), userID, dto.ChangePasswordDTO{
			OldPassword: "second-password-2",
			NewPassword: "second-password-2",
		})
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
	})

	t.Run("совпадение с прежним", func(t *testing.T) {
		err := env.svc.ChangePassword(context.Background(), userID, dto.ChangePasswordDTO{
			OldPassword: "second-password-2",
			NewPassword: "first-password-1",
		})
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
	})

	t.Run("неверный старый пароль", func(t *testing.T) {
		err := env.svc.ChangePassword(context.Background(), userID, dto.ChangePasswordDTO{
			OldPassword: "wrong",
			NewPassword: "third-password-3",
		})
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
	})
}
