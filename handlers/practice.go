package handlers

import (
	"golf-performance-system/middleware"
	"golf-performance-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPracticeRoutes(app *fiber.App, practiceService *services.PracticeService) {
	// 🔐 Practice data is always per-user
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Drill CRUD
	secured.Post("/drills", practiceService.CreateDrill)
	secured.Get("/drills", practiceService.GetDrills)
	secured.Get("/drills/:id", practiceService.GetDrillByID)
	secured.Delete("/drills/:id", practiceService.DeleteDrill)

	// Sessions
	secured.Post("/drills/:id/sessions", practiceService.CreateSession)
	secured.Get("/drills/:id/sessions", practiceService.GetSessions)
	secured.Delete("/sessions/:id", practiceService.DeleteSession)

	// Trend over recent sessions
	secured.Get("/drills/:id/performance", practiceService.GetDrillPerformance)
}
