package middleware

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/Macro303/Neptunes-Pride/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// TokenRequired guards the write endpoints with the configured API token.
// Reads never pass through this middleware.
func TokenRequired(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			slog.Warn("Write endpoint hit but no api_token configured",
				slog.String("type", "http"),
				slog.String("path", c.Path()))
			return utils.SendUnauthorized(c, "Write API is disabled")
		}

		supplied := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			slog.Warn("Rejected write request",
				slog.String("type", "http"),
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.String("ip", c.IP()))
			return utils.SendUnauthorized(c, "You are not authorized to use this endpoint")
		}

		return c.Next()
	}
}
