package dto

import "time"

// User содержит данные пользователя платформы.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	TenantID   string    `json:"tenant_id,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse содержит ответ бэкенда на вход или регистрацию.
// Поля access, refresh и user обязательны для успешного входа.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// RefreshRequest содержит refresh токен для обновления access токена.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse содержит новый access токен и, если бэкенд ротирует
// refresh токены, новый refresh токен.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
