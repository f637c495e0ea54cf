package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	config "github.com/athlixir/athlixir_backend/configs"
	"github.com/athlixir/athlixir_backend/database"
	"github.com/athlixir/athlixir_backend/models"
	ws "github.com/athlixir/athlixir_backend/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var chatHub = ws.NewHub()

func GetUserConversations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var conversations []models.Conversation
	err := database.DB.
		Preload("Participants").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.email = ?", email).
		Order("last_message_time desc").
		Find(&conversations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}

	return c.JSON(conversations)
}

func GetConversationMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	conversationID := c.Params("conversationId")

	store := database.NewChatStore(database.DB)
	ok, err := store.IsParticipant(c.Context(), conversationID, email)
	if errors.Is(err, ws.ErrConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a participant in this conversation"})
	}

	var messages []models.Message
	if err := database.DB.
		Where("conversation_id = ?", conversationID).
		Order("timestamp asc").
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(messages)
}

func CreateConversation(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	type Request struct {
		ParticipantEmail string `json:"participantEmail" validate:"required,email"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var me, other models.User
	if err := database.DB.Where("email = ?", email).First(&me).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err := database.DB.Where("email = ?", req.ParticipantEmail).First(&other).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Participant not found"})
	}

	// Reuse an existing two-party conversation instead of creating a twin.
	var existing models.Conversation
	err := database.DB.
		Preload("Participants").
		Joins("JOIN conversation_participants cp1 ON cp1.conversation_id = conversations.id AND cp1.email = ?", me.Email).
		Joins("JOIN conversation_participants cp2 ON cp2.conversation_id = conversations.id AND cp2.email = ?", other.Email).
		First(&existing).Error
	if err == nil {
		return c.JSON(existing)
	}

	conversation := models.Conversation{
		Participants: []models.ConversationParticipant{
			{UserID: me.ID, Email: me.Email, Name: me.FullName, Role: me.Role},
			{UserID: other.ID, Email: other.Email, Name: other.FullName, Role: other.Role},
		},
	}
	if err := database.DB.Create(&conversation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create conversation"})
	}

	return c.Status(fiber.StatusCreated).JSON(conversation)
}

func ArchiveConversation(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	conversationID := c.Params("conversationId")

	store := database.NewChatStore(database.DB)
	conv, err := store.Conversation(c.Context(), conversationID)
	if errors.Is(err, ws.ErrConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to archive conversation"})
	}

	isMember := false
	for _, p := range conv.Participants {
		if p.Email == email {
			isMember = true
			break
		}
	}
	if !isMember {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a participant in this conversation"})
	}

	conv.Archived = !conv.Archived
	if err := database.DB.Model(&models.Conversation{}).
		Where("id = ?", conv.ID).
		Update("archived", conv.Archived).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to archive conversation"})
	}

	return c.JSON(conv)
}

// ServeWs is the realtime connection gateway. The handshake carries the
// bearer token as a query parameter; skipAuth=true is honored only when
// WS_ALLOW_INSECURE is set, and even then the caller must name an identity.
func ServeWs(conn *websocketcontrib.Conn) {
	client := ws.NewClient(chatHub, database.NewChatStore(database.DB), conn)

	identity, authErr := authenticateHandshake(conn)
	if authErr != "" {
		log.Printf("WebSocket auth failed: %s", authErr)
		_ = conn.WriteJSON(ws.OutEvent{Event: ws.EventError, Data: ws.ErrorPayload{Message: authErr}})
		conn.Close()
		return
	}

	log.Printf("Socket authenticated for user: %s", identity.Email)
	client.Authenticate(identity)
	defer func() {
		client.Close()
		conn.Close()
	}()

	ctx := context.Background()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for %s: %v", identity.Email, err)
			} else {
				log.Printf("WebSocket read error for %s: %v", identity.Email, err)
			}
			return
		}
		client.HandleEvent(ctx, raw)
	}
}

// authenticateHandshake returns the identity for the connection or a
// non-empty auth error message. The error strings distinguish a missing
// token from an expired and an otherwise invalid one.
func authenticateHandshake(conn *websocketcontrib.Conn) (ws.Identity, string) {
	if conn.Query("skipAuth") == "true" && config.ConfigBool("WS_ALLOW_INSECURE") {
		email := conn.Query("email")
		if email == "" {
			return ws.Identity{}, "Authentication error: skipAuth requires an email"
		}
		return ws.Identity{ID: "diagnostic", Email: email}, ""
	}

	tokenString := conn.Query("token")
	if tokenString == "" {
		return ws.Identity{}, "Authentication error: No token provided"
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ws.Identity{}, "Authentication error: Token expired"
		}
		return ws.Identity{}, "Authentication error: Invalid token"
	}

	id, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if email == "" {
		return ws.Identity{}, "Authentication error: Invalid token"
	}
	return ws.Identity{ID: id, Email: email}, ""
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
