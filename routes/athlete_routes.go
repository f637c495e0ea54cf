package routes

import (
	"github.com/athlixir/athlixir_backend/handlers"
	"github.com/athlixir/athlixir_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AthleteRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	athletes := api.Group("/athletes", middleware.Protected())
	athletes.Get("/profile", handlers.GetAthleteProfile)
	athletes.Post("/profile", handlers.SaveAthleteProfile)
	athletes.Get("/profile/:email", handlers.GetAthleteProfileByEmail)
	athletes.Get("/stats", handlers.GetAthleteStats)
}
