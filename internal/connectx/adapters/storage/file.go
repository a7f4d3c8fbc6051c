package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"connectx/internal/connectx/ports/storage"
)

// Константы файлового хранилища.
const (
	fileExtension  = ".json"
	dirPermissions = 0o700
	filePermission = 0o600
)

// FileStorage реализует интерфейс Storage в каталоге на диске.
// Каждый ключ хранится отдельным файлом с правами только для владельца,
// поскольку содержимое включает токены сессии.
type FileStorage struct {
	dir string
}

// NewFileStorage создает файловое хранилище в заданном каталоге,
// создавая каталог при необходимости.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is not configured")
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

var _ storage.Storage = (*FileStorage)(nil)

// Get возвращает значение по ключу или пустую строку.
func (s *FileStorage) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read storage file: %w", err)
	}
	return string(data), nil
}

// Set сохраняет значение по ключу.
func (s *FileStorage) Set(_ context.Context, key string, value string) error {
	if err := os.WriteFile(s.path(key), []byte(value), filePermission); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	return nil
}

// Remove удаляет значение по ключу.
func (s *FileStorage) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove storage file: %w", err)
	}
	return nil
}

// path строит путь к файлу ключа, не позволяя ключу выйти за пределы каталога.
func (s *FileStorage) path(key string) string {
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+fileExtension)
}
