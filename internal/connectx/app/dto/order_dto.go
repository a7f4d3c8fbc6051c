package dto

import "time"

// Статусы заказа.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem содержит позицию заказа.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order содержит данные заказа.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	TenantID      string      `json:"tenant_id"`
	Status        string      `json:"status"`
	TotalAmount   float64     `json:"total_amount"`
	Items         []OrderItem `json:"items"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// CreateOrderRequest содержит данные для оформления заказа.
type CreateOrderRequest struct {
	Items         []OrderItem `json:"items"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	Address       string      `json:"address,omitempty"`
}

// UpdateOrderStatusRequest содержит новый статус заказа.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
