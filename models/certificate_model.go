package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AthleteEmail string    `gorm:"size:255;not null;index" json:"athlete_email"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	IssuedAt     time.Time `gorm:"not null" json:"issued_at"`
	FileURL      string    `gorm:"type:text;not null" json:"file_url"`
}
