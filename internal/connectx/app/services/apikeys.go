package services

import (
	"context"
	"fmt"
	"net/http"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
)

// APIKeysService выполняет операции над ключами API арендатора.
type APIKeysService struct {
	client *client.Client
}

// NewAPIKeysService создает новый сервис ключей API.
func NewAPIKeysService(apiClient *client.Client) *APIKeysService {
	return &APIKeysService{client: apiClient}
}

// List возвращает страницу ключей API.
func (s *APIKeysService) List(ctx context.Context, params dto.ListParams) (dto.Page[dto.APIKey], error) {
	page, err := client.Do[dto.Page[dto.APIKey]](ctx, s.client, http.MethodGet, "api-keys/", params.Values(), nil, client.WithoutCache())
	if err != nil {
		return dto.Page[dto.APIKey]{}, fmt.Errorf("failed to list api keys: %w", err)
	}
	return page, nil
}

// Create создает новый ключ API. Значение ключа возвращается
// только в этом ответе.
func (s *APIKeysService) Create(ctx context.Context, name string) (dto.CreateAPIKeyResponse, error) {
	created, err := client.Do[dto.CreateAPIKeyResponse](ctx, s.client, http.MethodPost, "api-keys/",
		nil, &dto.CreateAPIKeyRequest{Name: name})
	if err != nil {
		return dto.CreateAPIKeyResponse{}, fmt.Errorf("failed to create api key: %w", err)
	}
	return created, nil
}

// Revoke отзывает ключ API.
func (s *APIKeysService) Revoke(ctx context.Context, keyID string) error {
	if _, err := s.client.Request(ctx, http.MethodDelete, "api-keys/"+keyID, nil, nil); err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	return nil
}
