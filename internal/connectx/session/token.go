package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiresWithin сообщает, истекает ли срок действия JWT токена
// в пределах window. Подпись не проверяется: клиенту нужен только срок
// действия, проверка подлинности остается за бэкендом. Непрозрачные
// токены без claim exp считаются действующими.
func tokenExpiresWithin(token string, window time.Duration) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < window
}
