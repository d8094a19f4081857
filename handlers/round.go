package handlers

import (
	"golf-performance-system/middleware"
	"golf-performance-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRoundRoutes(app *fiber.App, roundService *services.RoundService, statsService *services.StatsService) {
	// 🔐 All round and stats routes require user context from the Gateway
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Round CRUD (no update — rounds are immutable once logged)
	secured.Post("/rounds", roundService.CreateRound)
	secured.Get("/rounds", roundService.GetRounds)
	secured.Delete("/rounds/:id", roundService.DeleteRound)

	// Hole-by-hole detail
	secured.Post("/rounds/:id/scores", roundService.AddRoundScores)
	secured.Get("/rounds/:id/scores", roundService.GetRoundScores)
	secured.Get("/rounds/:id/handicap", statsService.GetRoundHandicap)

	// Dashboard statistics
	secured.Get("/stats/snapshot", statsService.GetSnapshot)
	secured.Get("/stats/timeframe", statsService.GetTimeframe)
}
