package models

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LastMessage     string    `gorm:"size:255;default:''" json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `gorm:"default:0" json:"unread_count"`
	Archived        bool      `gorm:"default:false" json:"archived"`

	Participants []ConversationParticipant `gorm:"foreignkey:ConversationID" json:"participants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationParticipant carries a denormalized snapshot of the user at the
// time the conversation was created. Membership is fixed at creation.
type ConversationParticipant struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	ConversationID uuid.UUID `gorm:"not null;index" json:"-"`
	UserID         uuid.UUID `gorm:"not null" json:"user_id"`
	Email          string    `gorm:"size:255;not null;index" json:"email"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Role           string    `gorm:"size:20" json:"role"`
}
