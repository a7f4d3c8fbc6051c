// Package storage содержит реализации хранилища состояния сессии:
// в памяти процесса, в файле и в Redis.
package storage

import (
	"context"
	"sync"

	"connectx/internal/connectx/ports/storage"
)

// MemoryStorage реализует интерфейс Storage на основе map в памяти.
// Используется в тестах и для сессий, не переживающих перезапуск процесса.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage создает новое хранилище в памяти.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

var _ storage.Storage = (*MemoryStorage)(nil)

// Get возвращает значение по ключу или пустую строку.
func (s *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// Set сохраняет значение по ключу.
func (s *MemoryStorage) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Remove удаляет значение по ключу.
func (s *MemoryStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
