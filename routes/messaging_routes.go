package routes

import (
	"github.com/athlixir/athlixir_backend/handlers"
	"github.com/athlixir/athlixir_backend/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	conversations := api.Group("/conversations", middleware.Protected())
	conversations.Get("", handlers.GetUserConversations)
	conversations.Post("", handlers.CreateConversation)
	conversations.Get("/:conversationId/messages", handlers.GetConversationMessages)
	conversations.Put("/:conversationId/archive", handlers.ArchiveConversation)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
