package routes

import (
	"github.com/athlixir/athlixir_backend/handlers"
	"github.com/athlixir/athlixir_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/users", handlers.AdminListUsers)
	admin.Get("/documents/pending", handlers.AdminListPendingDocuments)
	admin.Put("/documents/:id/review", handlers.AdminReviewDocument)
}
