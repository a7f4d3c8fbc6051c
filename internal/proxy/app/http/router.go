// Package http содержит компоненты HTTP сервера прокси.
package http

import (
	"github.com/gofiber/fiber/v3"

	"connectx/internal/proxy/app/http/middleware"
	"connectx/internal/proxy/forward"
)

// SetupRouter настраивает маршрутизацию HTTP сервера прокси.
func SetupRouter(app *fiber.App, forwarder *forward.Forwarder) {
	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Проверка живости.
	app.Get("/healthz", func(ctx fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	// Все запросы приложения проходят через путь /api/proxy/.
	app.All("/api/proxy/*", forwarder.Forward)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
