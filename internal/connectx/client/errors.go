package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Ошибки клиента.
var (
	// ErrSessionExpired возвращается, когда access токен отклонен
	// и обновить его по refresh токену не удалось.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// Сообщения об ошибках по кодам состояния.
const (
	msgUnauthorized   = "Invalid email or password. Please try again."
	msgForbidden      = "You do not have permission to perform this action."
	msgNotFound       = "The requested resource was not found."
	msgValidation     = "Validation failed. Please check your input."
	msgServerError    = "Server error. Please try again later."
	msgGenericFailure = "Request failed. Please try again."
)

// APIError - нормализованная ошибка ответа бэкенда. Любой ответ
// с кодом вне диапазона 2xx приводится к этой форме.
type APIError struct {
	Status  int
	Message string
	Details any
}

// Error возвращает строковое представление ошибки.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// errorBody - внешняя форма тела ошибки бэкенда. Поле error может быть
// как строкой, так и вложенным объектом.
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Detail  string          `json:"detail"`
	Message string          `json:"message"`
	Field   string          `json:"field"`
}

// nestedErrorBody - вложенная форма поля error.
type nestedErrorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Field   string          `json:"field"`
	Details json.RawMessage `json:"details"`
}

// parseErrorBody извлекает человекочитаемое сообщение и детали из тела
// ошибки, перебирая известные формы по порядку. Возвращает пустую строку,
// если тело не является JSON известной формы.
func parseErrorBody(body []byte) (string, any) {
	if len(body) == 0 {
		return "", nil
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil
	}

	if len(parsed.Error) > 0 {
		var asString string
		if err := json.Unmarshal(parsed.Error, &asString); err == nil && asString != "" {
			return asString, nil
		}

		var nested nestedErrorBody
		if err := json.Unmarshal(parsed.Error, &nested); err == nil && nested.Message != "" {
			var details any
			if len(nested.Details) > 0 {
				_ = json.Unmarshal(nested.Details, &details)
			}
			if nested.Field != "" && details == nil {
				details = map[string]string{"field": nested.Field}
			}
			return nested.Message, details
		}
	}

	if parsed.Detail != "" {
		return parsed.Detail, nil
	}
	if parsed.Message != "" {
		return parsed.Message, nil
	}

	return "", nil
}

// newAPIError строит APIError из кода состояния и тела ответа.
// Сообщения для известных кодов фиксированы; для остальных используется
// сообщение из тела, текст кода состояния или общая заглушка.
func newAPIError(status int, body []byte) *APIError {
	parsed, details := parseErrorBody(body)

	var message string
	switch status {
	case http.StatusUnauthorized:
		message = msgUnauthorized
	case http.StatusForbidden:
		message = msgForbidden
	case http.StatusNotFound:
		message = msgNotFound
	case http.StatusUnprocessableEntity:
		if parsed != "" {
			message = parsed
		} else {
			message = msgValidation
		}
	case http.StatusInternalServerError:
		message = msgServerError
	default:
		switch {
		case parsed != "":
			message = parsed
		case http.StatusText(status) != "":
			message = http.StatusText(status)
		default:
			message = msgGenericFailure
		}
	}

	return &APIError{
		Status:  status,
		Message: message,
		Details: details,
	}
}
