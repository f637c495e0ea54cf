package database

import (
	"context"
	"errors"
	"time"

	"github.com/athlixir/athlixir_backend/models"
	"github.com/athlixir/athlixir_backend/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatStore is the gorm-backed implementation of websocket.ChatStore. The
// unread counter is only ever touched through single-statement updates so
// concurrent sends and read-acks cannot lose increments to a
// read-modify-write race.
type ChatStore struct {
	db *gorm.DB
}

func NewChatStore(db *gorm.DB) *ChatStore {
	return &ChatStore{db: db}
}

func (s *ChatStore) Conversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	id, err := uuid.Parse(conversationID)
	if err != nil {
		return nil, websocket.ErrConversationNotFound
	}

	var conv models.Conversation
	err = s.db.WithContext(ctx).
		Preload("Participants").
		Where("id = ?", id).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, websocket.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *ChatStore) IsParticipant(ctx context.Context, conversationID, email string) (bool, error) {
	id, err := uuid.Parse(conversationID)
	if err != nil {
		return false, websocket.ErrConversationNotFound
	}

	var convCount int64
	if err := s.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Count(&convCount).Error; err != nil {
		return false, err
	}
	if convCount == 0 {
		return false, websocket.ErrConversationNotFound
	}

	var count int64
	err = s.db.WithContext(ctx).
		Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND email = ?", id, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ChatStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *ChatStore) UpdateConversationSummary(ctx context.Context, conversationID, lastMessage string, at time.Time, incrementUnread bool) error {
	id, err := uuid.Parse(conversationID)
	if err != nil {
		return websocket.ErrConversationNotFound
	}

	updates := map[string]interface{}{
		"last_message":      lastMessage,
		"last_message_time": at,
	}
	if incrementUnread {
		updates["unread_count"] = gorm.Expr("unread_count + ?", 1)
	}

	res := s.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return websocket.ErrConversationNotFound
	}
	return nil
}

func (s *ChatStore) MarkConversationRead(ctx context.Context, conversationID, receiverEmail string) error {
	id, err := uuid.Parse(conversationID)
	if err != nil {
		return websocket.ErrConversationNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND receiver = ? AND read = ?", id, receiverEmail, false).
			Update("read", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", id).
			Update("unread_count", 0).Error
	})
}
