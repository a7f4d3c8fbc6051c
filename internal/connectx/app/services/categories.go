package services

import (
	"context"
	"fmt"
	"net/http"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
)

// CategoriesService выполняет операции над категориями товаров.
// Категории меняются редко и читаются часто - основной потребитель кэша.
type CategoriesService struct {
	client *client.Client
}

// NewCategoriesService создает новый сервис категорий.
func NewCategoriesService(apiClient *client.Client) *CategoriesService {
	return &CategoriesService{client: apiClient}
}

// List возвращает страницу категорий.
func (s *CategoriesService) List(ctx context.Context, params dto.ListParams) (dto.Page[dto.Category], error) {
	page, err := client.Do[dto.Page[dto.Category]](ctx, s.client, http.MethodGet, "categories/", params.Values(), nil)
	if err != nil {
		return dto.Page[dto.Category]{}, fmt.Errorf("failed to list categories: %w", err)
	}
	return page, nil
}

// Create создает новую категорию.
func (s *CategoriesService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (dto.Category, error) {
	category, err := client.Do[dto.Category](ctx, s.client, http.MethodPost, "categories/", nil, req)
	if err != nil {
		return dto.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// Delete удаляет категорию.
func (s *CategoriesService) Delete(ctx context.Context, categoryID string) error {
	if _, err := s.client.Request(ctx, http.MethodDelete, "categories/"+categoryID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
