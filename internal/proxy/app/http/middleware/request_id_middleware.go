// Package middleware содержит промежуточное ПО HTTP сервера прокси.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"connectx/pkg/logger"
)

// Ключ Locals с контекстом запроса.
const requestContextKey = "requestContext"

// Заголовок с идентификатором запроса.
const headerRequestID = "X-Request-ID"

// NewRequestIDMiddleware создает промежуточное ПО, устанавливающее
// идентификатор запроса: входящий заголовок X-Request-ID сохраняется,
// отсутствующий заменяется сгенерированным.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(headerRequestID))
		ctx.Locals(requestContextKey, requestCtx)

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(headerRequestID, id)
		}

		return ctx.Next()
	}
}

// RequestContext извлекает контекст запроса с идентификатором,
// установленный NewRequestIDMiddleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(requestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
