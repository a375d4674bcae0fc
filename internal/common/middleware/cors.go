package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// CORS allows the configured origins to fetch rendered diagrams.
func CORS(origins []string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: []string{"*"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions},
	})
}
