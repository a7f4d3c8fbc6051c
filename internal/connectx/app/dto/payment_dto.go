package dto

// InitializePaymentRequest содержит данные для инициализации платежа
// через платежный шлюз Chapa.
type InitializePaymentRequest struct {
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	ReturnURL string  `json:"return_url,omitempty"`
	// TxRef - идемпотентный идентификатор транзакции. Пустое значение
	// заполняется клиентом автоматически.
	TxRef string `json:"tx_ref,omitempty"`
}

// InitializePaymentResponse содержит ссылку на страницу оплаты.
type InitializePaymentResponse struct {
	CheckoutURL string `json:"checkout_url"`
	TxRef       string `json:"tx_ref"`
}

// VerifyPaymentRequest содержит идентификатор транзакции для проверки.
type VerifyPaymentRequest struct {
	TxRef string `json:"tx_ref"`
}

// VerifyPaymentResponse содержит результат проверки платежа.
type VerifyPaymentResponse struct {
	Status   string  `json:"status"`
	TxRef    string  `json:"tx_ref"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"order_id,omitempty"`
}
