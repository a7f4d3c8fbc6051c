// Package cache содержит реализацию кэша ответов API в памяти процесса.
package cache

import (
	"strings"
	"sync"
	"time"

	"connectx/internal/connectx/ports/cache"
)

// DefaultTTL - время жизни записи кэша по умолчанию.
const DefaultTTL = 5 * time.Minute

// entry - запись кэша с моментом сохранения.
type entry struct {
	data     []byte
	storedAt time.Time
}

// MemoryCache реализует интерфейс ResponseCache на основе map в памяти.
// Истекшие записи не удаляются фоновым процессом: они перестают отдаваться
// и перезаписываются следующим успешным ответом.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// NewMemoryCache создает новый кэш в памяти с заданным временем жизни.
// Неположительное значение заменяется значением по умолчанию.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

var _ cache.ResponseCache = (*MemoryCache)(nil)

// Get возвращает данные по ключу, пока не истекло их время жизни.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.data, true
}

// Set безусловно перезаписывает данные по ключу.
func (c *MemoryCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, storedAt: time.Now()}
}

// InvalidatePrefix удаляет все записи, ключ которых начинается с prefix.
func (c *MemoryCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Clear удаляет все записи.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len возвращает количество записей, включая истекшие.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
