package handlers

import (
	"golf-performance-system/middleware"
	"golf-performance-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App, courseService *services.CourseService) {
	// 🔓 Public routes — *no user context*, but **still require Gateway auth**
	app.Get("/courses", courseService.GetAllCourses)
	app.Get("/courses/:id", courseService.GetCourseByID)
	app.Get("/courses/:id/scorecard", courseService.GetScorecard)

	// 🔐 Secured routes — require user context (userID, roles)
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/courses", courseService.CreateCourse)
	secured.Delete("/courses/:id", courseService.DeleteCourse)
	secured.Put("/courses/:id/scorecard", courseService.PutScorecard)
}
