package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger returns the request log middleware.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}?${queryParams}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

// SetLogLevel applies a level name such as "debug" or "warn" to the fiber logger.
// Unknown names leave the level at info.
func SetLogLevel(name string) log.Level {
	level := log.LevelInfo
	switch strings.ToLower(name) {
	case "trace":
		level = log.LevelTrace
	case "debug":
		level = log.LevelDebug
	case "warn", "warning":
		level = log.LevelWarn
	case "error":
		level = log.LevelError
	}
	log.SetLevel(level)
	return level
}
