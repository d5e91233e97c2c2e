package repositories

import (
	"context"
	"time"
)

// Ключи кеша, которыми пользуется сервис аккаунтов.
const (
	SessionCacheKey            = "session:device"
	verificationCacheKeyPrefix = "verification:"
)

func VerificationCacheKey(token string) string {
	return verificationCacheKeyPrefix + token
}

// CacheRepositoryInterface - хранилище сессии устройства и токенов подтверждения.
// Get возвращает apperrors.ErrNotFound, если ключа нет.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
}
