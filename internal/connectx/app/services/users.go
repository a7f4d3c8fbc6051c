package services

import (
	"context"
	"fmt"
	"net/http"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
)

// UsersService выполняет операции над пользователями.
type UsersService struct {
	client *client.Client
}

// NewUsersService создает новый сервис пользователей.
func NewUsersService(apiClient *client.Client) *UsersService {
	return &UsersService{client: apiClient}
}

// List возвращает страницу пользователей с учетом фильтров.
func (s *UsersService) List(ctx context.Context, params dto.ListParams) (dto.Page[dto.User], error) {
	page, err := client.Do[dto.Page[dto.User]](ctx, s.client, http.MethodGet, "users/", params.Values(), nil)
	if err != nil {
		return dto.Page[dto.User]{}, fmt.Errorf("failed to list users: %w", err)
	}
	return page, nil
}

// Me возвращает профиль текущего пользователя.
func (s *UsersService) Me(ctx context.Context) (dto.User, error) {
	user, err := client.Do[dto.User](ctx, s.client, http.MethodGet, "users/me/", nil, nil, client.WithoutCache())
	if err != nil {
		return dto.User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return user, nil
}

// Create создает нового пользователя команды арендатора.
func (s *UsersService) Create(ctx context.Context, req *dto.RegisterRequest) (dto.User, error) {
	user, err := client.Do[dto.User](ctx, s.client, http.MethodPost, "users/", nil, req)
	if err != nil {
		return dto.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
