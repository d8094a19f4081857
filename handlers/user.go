package handlers

import (
	"golf-performance-system/middleware"
	"golf-performance-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(
	app *fiber.App,
	userService *services.UserService,
	notificationService *services.NotificationService,
	authClient *services.AuthServiceClient,
) {
	// 🔐 Authenticated routes
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/users/search", userService.SearchUsers)
	secured.Post("/users/me/avatar", userService.UploadAvatar)
	secured.Post("/users/me/home-course", userService.SetHomeCourse)

	// SSE authenticates via query-param token against the identity provider
	// (EventSource cannot send the gateway's user-context headers)
	app.Get("/notifications/stream",
		middleware.SSEAuthMiddleware(authClient),
		notificationService.StreamNotificationsSSE,
	)
}
