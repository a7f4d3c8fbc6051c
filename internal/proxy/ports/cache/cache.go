// Package cache определяет интерфейс кэша пересылаемых ответов прокси.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс кэша ответов бэкенда на стороне прокси.
type Cache interface {
	// Get возвращает значение по ключу или пустую строку.
	Get(ctx context.Context, key string) (string, error)

	// Set сохраняет значение с временем жизни. Нулевое время жизни
	// заменяется значением по умолчанию.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// DeleteByPrefix удаляет все записи с заданным префиксом ключа.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Close закрывает соединение с хранилищем кэша.
	Close() error
}
