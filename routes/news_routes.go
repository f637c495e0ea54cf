package routes

import (
	"github.com/athlixir/athlixir_backend/handlers"
	"github.com/gofiber/fiber/v2"
)

// News endpoints are public: the dashboard shows headlines before login.
func NewsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	news := api.Group("/news")
	news.Get("/sports", handlers.GetSportsNews)
	news.Get("/trending", handlers.GetTrendingNews)
	news.Get("/search", handlers.SearchNews)
	news.Get("/category/:category", handlers.GetNewsByCategory)
}
