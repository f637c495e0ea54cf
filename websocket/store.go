package websocket

import (
	"context"
	"errors"
	"time"

	"github.com/athlixir/athlixir_backend/models"
)

// Identity is the authenticated principal attached to a connection.
type Identity struct {
	ID    string
	Email string
}

var ErrConversationNotFound = errors.New("conversation not found")

// ChatStore is the persistence contract the realtime layer depends on. The
// summary-mutating operations must be atomic at the store level so concurrent
// sends against the same conversation cannot lose unread-count increments.
type ChatStore interface {
	// Conversation returns the conversation with its participants, or
	// ErrConversationNotFound.
	Conversation(ctx context.Context, conversationID string) (*models.Conversation, error)

	// IsParticipant reports whether email is a member of the conversation.
	// Returns ErrConversationNotFound if the conversation does not exist.
	IsParticipant(ctx context.Context, conversationID, email string) (bool, error)

	// CreateMessage persists a new message record.
	CreateMessage(ctx context.Context, msg *models.Message) error

	// UpdateConversationSummary sets lastMessage/lastMessageTime and, when
	// incrementUnread is true, bumps unreadCount by one in the same update.
	UpdateConversationSummary(ctx context.Context, conversationID, lastMessage string, at time.Time, incrementUnread bool) error

	// MarkConversationRead flips every unread message addressed to
	// receiverEmail in the conversation to read and resets unreadCount to
	// zero. Calling it again is a no-op.
	MarkConversationRead(ctx context.Context, conversationID, receiverEmail string) error
}
