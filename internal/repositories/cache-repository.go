package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AuthCacheRepositoryInterface хранит счётчики неудачных входов и
// блокировки учётных записей. Данные предметной области не кешируются.
type AuthCacheRepositoryInterface interface {
	IncrementLoginAttempts(ctx context.Context, email string, window time.Duration) (int64, error)
	ResetLoginAttempts(ctx context.Context, email string) error
	LockAccount(ctx context.Context, email string, duration time.Duration) error
	IsAccountLocked(ctx context.Context, email string) (bool, error)
}

type authCacheRepository struct {
	client *redis.Client
}

func NewAuthCacheRepository(client *redis.Client) AuthCacheRepositoryInterface {
	return &authCacheRepository{client: client}
}

func attemptsKey(email string) string {
	return "auth:attempts:" + email
}

func lockKey(email string) string {
	return "auth:lock:" + email
}

func (r *authCacheRepository) IncrementLoginAttempts(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := attemptsKey(email)
	attempts, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("ошибка учёта попыток входа: %w", err)
	}
	if attempts == 1 {
		if err = r.client.Expire(ctx, key, window).Err(); err != nil {
			return attempts, fmt.Errorf("ошибка установки срока счётчика входов: %w", err)
		}
	}
	return attempts, nil
}

func (r *authCacheRepository) ResetLoginAttempts(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, attemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("ошибка сброса счётчика входов: %w", err)
	}
	return nil
}

func (r *authCacheRepository) LockAccount(ctx context.Context, email string, duration time.Duration) error {
	if err := r.client.Set(ctx, lockKey(email), "1", duration).Err(); err != nil {
		return fmt.Errorf("ошибка блокировки учётной записи: %w", err)
	}
	return nil
}

func (r *authCacheRepository) IsAccountLocked(ctx context.Context, email string) (bool, error) {
	err := r.client.Get(ctx, lockKey(email)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка проверки блокировки: %w", err)
	}
	return true, nil
}
