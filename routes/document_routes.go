package routes

import (
	"github.com/athlixir/athlixir_backend/handlers"
	"github.com/athlixir/athlixir_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func DocumentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	documents := api.Group("/documents", middleware.Protected())
	documents.Get("/upload-signature", handlers.GenerateUploadSignature)
	documents.Post("", handlers.CreateDocument)
	documents.Get("", handlers.GetDocuments)
	documents.Get("/:id", handlers.GetDocument)
	documents.Delete("/:id", handlers.DeleteDocument)
}
