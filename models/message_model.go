package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID `gorm:"not null;index" json:"conversation_id"`
	Sender         string    `gorm:"size:255;not null" json:"sender"`
	Receiver       string    `gorm:"size:255;not null;index" json:"receiver"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Timestamp      time.Time `gorm:"not null;index" json:"timestamp"`
	Read           bool      `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
