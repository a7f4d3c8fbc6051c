// Package session определяет интерфейс источника токенов для API клиента.
package session

import "context"

// TokenSource предоставляет API клиенту access токен текущей сессии
// и операцию его обновления. Реализуется хранилищем учетных данных.
type TokenSource interface {
	// EnsureValidToken возвращает текущий access токен, обновляя его
	// заранее, если срок действия истекает. Для анонимной сессии
	// возвращается пустая строка без ошибки.
	EnsureValidToken(ctx context.Context) (string, error)

	// RefreshAccessToken обменивает refresh токен на новый access токен.
	// Конкурентные вызовы разделяют один выполняющийся запрос обновления.
	// Неудачное обновление переводит сессию в анонимное состояние.
	RefreshAccessToken(ctx context.Context) (string, error)
}
