// Package services содержит типизированные обертки над API клиентом
// для ресурсов ConnectX: товаров, заказов, категорий, арендаторов,
// пользователей, ключей API, аналитики и платежей.
package services

import (
	"context"
	"fmt"
	"net/http"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
)

// ProductsService выполняет операции над товарами. Товары мутируются
// часто, поэтому чтение через кэш компенсируется инвалидацией по префиксу
// при записи.
type ProductsService struct {
	client *client.Client
}

// NewProductsService создает новый сервис товаров.
func NewProductsService(apiClient *client.Client) *ProductsService {
	return &ProductsService{client: apiClient}
}

// List возвращает страницу товаров с учетом фильтров.
func (s *ProductsService) List(ctx context.Context, params dto.ListParams) (dto.Page[dto.Product], error) {
	page, err := client.Do[dto.Page[dto.Product]](ctx, s.client, http.MethodGet, "products/", params.Values(), nil)
	if err != nil {
		return dto.Page[dto.Product]{}, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}

// Get возвращает товар по идентификатору.
func (s *ProductsService) Get(ctx context.Context, productID string) (dto.Product, error) {
	product, err := client.Do[dto.Product](ctx, s.client, http.MethodGet, "products/"+productID, nil, nil)
	if err != nil {
		return dto.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Create создает новый товар.
func (s *ProductsService) Create(ctx context.Context, req *dto.CreateProductRequest) (dto.Product, error) {
	product, err := client.Do[dto.Product](ctx, s.client, http.MethodPost, "products/", nil, req)
	if err != nil {
		return dto.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// Update изменяет поля товара.
func (s *ProductsService) Update(ctx context.Context, productID string, req *dto.UpdateProductRequest) (dto.Product, error) {
	product, err := client.Do[dto.Product](ctx, s.client, http.MethodPatch, "products/"+productID, nil, req)
	if err != nil {
		return dto.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete удаляет товар.
func (s *ProductsService) Delete(ctx context.Context, productID string) error {
	if _, err := s.client.Request(ctx, http.MethodDelete, "products/"+productID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
