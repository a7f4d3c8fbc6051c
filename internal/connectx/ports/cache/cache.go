// Package cache определяет интерфейс кэша ответов API.
package cache

// ResponseCache определяет интерфейс для краткосрочного кэширования
// успешных GET ответов. Ключ детерминированно строится из пути запроса
// и сериализованных параметров.
type ResponseCache interface {
	// Get возвращает данные по ключу, пока не истекло их время жизни.
	Get(key string) ([]byte, bool)

	// Set безусловно перезаписывает данные по ключу.
	Set(key string, data []byte)

	// InvalidatePrefix удаляет все записи, ключ которых начинается с prefix.
	InvalidatePrefix(prefix string)

	// Clear удаляет все записи.
	Clear()
}
