// Package storage определяет интерфейс постоянного хранилища состояния сессии.
package storage

import "context"

// Storage определяет интерфейс хранилища ключ-значение для данных сессии.
// Конкретный бэкенд (память, файл, Redis) выбирается при сборке приложения.
type Storage interface {
	// Get возвращает значение по ключу. Отсутствие ключа не является
	// ошибкой: возвращается пустая строка.
	Get(ctx context.Context, key string) (string, error)

	// Set сохраняет значение по ключу, перезаписывая существующее.
	Set(ctx context.Context, key string, value string) error

	// Remove удаляет значение по ключу. Удаление отсутствующего ключа
	// не является ошибкой.
	Remove(ctx context.Context, key string) error
}
