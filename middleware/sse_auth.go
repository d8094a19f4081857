// golf-performance-system/middleware/sse_auth.go
package middleware

import (
	"log"
	"strings"

	"golf-performance-system/services"

	"github.com/gofiber/fiber/v2"
)

// SSEAuthMiddleware validates `token` and `device_id` from query params
// via AuthServiceClient. EventSource cannot set headers, so SSE clients
// cannot ride the gateway's header-based user context and authenticate
// directly against the identity provider instead.
//
// Usage:
//
//	app.Get("/notifications/stream", middleware.SSEAuthMiddleware(authClient), notificationService.StreamNotificationsSSE)
func SSEAuthMiddleware(authClient *services.AuthServiceClient) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		accessToken := strings.TrimSpace(string(c.Request().URI().QueryArgs().Peek("token")))
		deviceID := strings.TrimSpace(string(c.Request().URI().QueryArgs().Peek("device_id")))

		if accessToken == "" || deviceID == "" {
			log.Printf("[SSEAuth] ❌ Missing query params on %s", c.Path())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing token or device_id in query",
			})
		}

		resp, err := authClient.ValidateToken(accessToken, deviceID)
		if err != nil {
			log.Printf("[SSEAuth] ❌ Validation failed for token (prefix: %s...), device %s: %v",
				accessToken[:min(10, len(accessToken))], deviceID, err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		// Attach to Fiber context (like UserContextMiddleware, but from query)
		c.Locals("user_id", resp.UserID)
		c.Locals("device_id", resp.DeviceID)
		c.Locals("user_roles", resp.Roles)

		return c.Next()
	}
}
