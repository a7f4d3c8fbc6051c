package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"connectx/internal/connectx/config"
	"connectx/internal/connectx/ports/storage"
)

// Константы сообщений об ошибках.
const (
	ErrorFailedToGetValue    = "failed to get value from redis"
	ErrorFailedToSetValue    = "failed to set value in redis"
	ErrorFailedToRemoveValue = "failed to remove value from redis"
	ErrorFailedToCloseRedis  = "failed to close redis connection"
)

// RedisStorage реализует интерфейс Storage на основе Redis. Используется,
// когда состояние сессии должно разделяться несколькими процессами.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage создает хранилище сессий в Redis и проверяет соединение.
func NewRedisStorage(ctx context.Context, cfg *config.RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddressString(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStorage{client: client}, nil
}

var _ storage.Storage = (*RedisStorage)(nil)

// Get возвращает значение по ключу или пустую строку.
func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", ErrorFailedToGetValue, err)
	}
	return value, nil
}

// Set сохраняет значение по ключу без ограничения времени жизни:
// сессия живет до явного выхода.
func (s *RedisStorage) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSetValue, err)
	}
	return nil
}

// Remove удаляет значение по ключу.
func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToRemoveValue, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *RedisStorage) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToCloseRedis, err)
	}
	return nil
}
