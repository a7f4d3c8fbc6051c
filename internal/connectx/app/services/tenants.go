package services

import (
	"context"
	"fmt"
	"net/http"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
)

// TenantsService выполняет операции над арендаторами.
type TenantsService struct {
	client *client.Client
}

// NewTenantsService создает новый сервис арендаторов.
func NewTenantsService(apiClient *client.Client) *TenantsService {
	return &TenantsService{client: apiClient}
}

// List возвращает страницу арендаторов с учетом фильтров.
func (s *TenantsService) List(ctx context.Context, params dto.ListParams) (dto.Page[dto.Tenant], error) {
	page, err := client.Do[dto.Page[dto.Tenant]](ctx, s.client, http.MethodGet, "tenants/", params.Values(), nil)
	if err != nil {
		return dto.Page[dto.Tenant]{}, fmt.Errorf("failed to list tenants: %w", err)
	}
	return page, nil
}

// Me возвращает арендатора текущего пользователя.
func (s *TenantsService) Me(ctx context.Context) (dto.Tenant, error) {
	tenant, err := client.Do[dto.Tenant](ctx, s.client, http.MethodGet, "tenants/me/", nil, nil, client.WithoutCache())
	if err != nil {
		return dto.Tenant{}, fmt.Errorf("failed to get current tenant: %w", err)
	}
	return tenant, nil
}

// Get возвращает арендатора по идентификатору.
func (s *TenantsService) Get(ctx context.Context, tenantID string) (dto.Tenant, error) {
	tenant, err := client.Do[dto.Tenant](ctx, s.client, http.MethodGet, "tenants/"+tenantID, nil, nil)
	if err != nil {
		return dto.Tenant{}, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}

// Create регистрирует нового арендатора.
func (s *TenantsService) Create(ctx context.Context, req *dto.CreateTenantRequest) (dto.Tenant, error) {
	tenant, err := client.Do[dto.Tenant](ctx, s.client, http.MethodPost, "tenants/", nil, req)
	if err != nil {
		return dto.Tenant{}, fmt.Errorf("failed to create tenant: %w", err)
	}
	return tenant, nil
}

// UpdateStatus изменяет статус верификации арендатора. Доступно
// только администраторам платформы.
func (s *TenantsService) UpdateStatus(ctx context.Context, tenantID string, req *dto.UpdateTenantStatusRequest) (dto.Tenant, error) {
	tenant, err := client.Do[dto.Tenant](ctx, s.client, http.MethodPatch, "tenants/"+tenantID, nil, req)
	if err != nil {
		return dto.Tenant{}, fmt.Errorf("failed to update tenant status: %w", err)
	}
	return tenant, nil
}
