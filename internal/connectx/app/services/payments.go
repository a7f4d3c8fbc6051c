package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
)

// PaymentsService инициализирует и проверяет платежи через шлюз Chapa.
// Платежные запросы никогда не кэшируются.
type PaymentsService struct {
	client *client.Client
}

// NewPaymentsService создает новый сервис платежей.
func NewPaymentsService(apiClient *client.Client) *PaymentsService {
	return &PaymentsService{client: apiClient}
}

// Initialize создает платежную сессию и возвращает ссылку на оплату.
// Пустой tx_ref заполняется уникальным идентификатором, чтобы повтор
// запроса не создал второй платеж.
func (s *PaymentsService) Initialize(ctx context.Context, req *dto.InitializePaymentRequest) (dto.InitializePaymentResponse, error) {
	if req.TxRef == "" {
		req.TxRef = "tx-" + uuid.New().String()
	}

	resp, err := client.Do[dto.InitializePaymentResponse](ctx, s.client, http.MethodPost,
		"payments/initialize_chapa_payment/", nil, req, client.WithoutCache())
	if err != nil {
		return dto.InitializePaymentResponse{}, fmt.Errorf("failed to initialize payment: %w", err)
	}
	return resp, nil
}

// Verify проверяет состояние платежа по идентификатору транзакции.
func (s *PaymentsService) Verify(ctx context.Context, txRef string) (dto.VerifyPaymentResponse, error) {
	resp, err := client.Do[dto.VerifyPaymentResponse](ctx, s.client, http.MethodPost,
		"payments/verify_chapa_payment/", nil, &dto.VerifyPaymentRequest{TxRef: txRef}, client.WithoutCache())
	if err != nil {
		return dto.VerifyPaymentResponse{}, fmt.Errorf("failed to verify payment: %w", err)
	}
	return resp, nil
}
