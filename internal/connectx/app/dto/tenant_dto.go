package dto

import "time"

// Статусы верификации арендатора.
const (
	TenantStatusPending     = "pending"
	TenantStatusUnderReview = "under_review"
	TenantStatusApproved    = "approved"
	TenantStatusRejected    = "rejected"
)

// Tenant содержит данные арендатора - обособленного продавца платформы.
// Все товары и заказы принадлежат одному арендатору.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTenantRequest содержит данные для регистрации арендатора.
type CreateTenantRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateTenantStatusRequest содержит новый статус верификации арендатора.
type UpdateTenantStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
