package routes

import (
	"github.com/athlixir/athlixir_backend/handlers"
	"github.com/athlixir/athlixir_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AchievementRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	achievements := api.Group("/achievements", middleware.Protected())
	achievements.Get("", handlers.GetAchievements)
	achievements.Post("", handlers.CreateAchievement)
	achievements.Get("/:id", handlers.GetAchievement)
	achievements.Put("/:id", handlers.UpdateAchievement)
	achievements.Delete("/:id", handlers.DeleteAchievement)
}
