package dto

import "time"

// APIKey содержит метаданные ключа API. Само значение ключа бэкенд
// возвращает один раз при создании.
type APIKey struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Prefix    string     `json:"prefix"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// CreateAPIKeyRequest содержит данные для создания ключа API.
type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

// CreateAPIKeyResponse содержит созданный ключ вместе с его
// единственный раз возвращаемым значением.
type CreateAPIKeyResponse struct {
	APIKey
	Key string `json:"key"`
}
