package services

import (
	"context"
	"fmt"
	"net/http"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
)

// OrdersService выполняет операции над заказами. Списки заказов читаются
// без кэша: после смены статуса устаревшие данные недопустимы.
type OrdersService struct {
	client *client.Client
}

// NewOrdersService создает новый сервис заказов.
func NewOrdersService(apiClient *client.Client) *OrdersService {
	return &OrdersService{client: apiClient}
}

// List возвращает страницу заказов с учетом фильтров.
func (s *OrdersService) List(ctx context.Context, params dto.ListParams) (dto.Page[dto.Order], error) {
	page, err := client.Do[dto.Page[dto.Order]](ctx, s.client, http.MethodGet, "orders/", params.Values(), nil, client.WithoutCache())
	if err != nil {
		return dto.Page[dto.Order]{}, fmt.Errorf("failed to list orders: %w", err)
	}
	return page, nil
}

// Get возвращает заказ по идентификатору.
func (s *OrdersService) Get(ctx context.Context, orderID string) (dto.Order, error) {
	order, err := client.Do[dto.Order](ctx, s.client, http.MethodGet, "orders/"+orderID, nil, nil, client.WithoutCache())
	if err != nil {
		return dto.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// Create оформляет новый заказ.
func (s *OrdersService) Create(ctx context.Context, req *dto.CreateOrderRequest) (dto.Order, error) {
	order, err := client.Do[dto.Order](ctx, s.client, http.MethodPost, "orders/", nil, req)
	if err != nil {
		return dto.Order{}, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// UpdateStatus переводит заказ в новый статус.
func (s *OrdersService) UpdateStatus(ctx context.Context, orderID, status string) (dto.Order, error) {
	order, err := client.Do[dto.Order](ctx, s.client, http.MethodPatch, "orders/"+orderID,
		nil, &dto.UpdateOrderStatusRequest{Status: status})
	if err != nil {
		return dto.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}
	return order, nil
}
