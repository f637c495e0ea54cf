package models

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AthleteEmail string    `gorm:"size:255;not null;index" json:"athlete_email"`

	Title       string    `gorm:"size:255;not null" json:"title"`
	Event       string    `gorm:"size:255;not null" json:"event"`
	MedalType   string    `gorm:"size:20;not null;default:'gold'" json:"medal_type"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description *string   `gorm:"type:text" json:"description"`

	IsCareerHighlight bool `gorm:"default:false;index" json:"is_career_highlight"`
	IsPersonalBest    bool `gorm:"default:false;index" json:"is_personal_best"`

	PerformanceDetails []PerformanceDetail `gorm:"foreignkey:AchievementID" json:"performance_details"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PerformanceDetail struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	AchievementID uuid.UUID `gorm:"not null;index" json:"-"`
	Label         string    `gorm:"size:100" json:"label"`
	Value         string    `gorm:"size:255" json:"value"`
}
