package models

import (
	"time"

	"github.com/google/uuid"
)

type Athlete struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"not null" json:"user_id"`
	Email  string    `gorm:"size:255;not null;unique" json:"email"`

	FullName          string    `gorm:"size:255;not null" json:"full_name"`
	Address           string    `gorm:"size:255;not null" json:"address"`
	District          string    `gorm:"size:100;not null" json:"district"`
	State             string    `gorm:"size:100;not null" json:"state"`
	Phone             string    `gorm:"size:30;not null" json:"phone"`
	Nationality       string    `gorm:"size:100;not null" json:"nationality"`
	DateOfBirth       time.Time `gorm:"not null" json:"date_of_birth"`
	Gender            string    `gorm:"size:10;not null" json:"gender"`
	SportsCategory    string    `gorm:"size:100;not null" json:"sports_category"`
	Biography         string    `gorm:"type:text;not null" json:"biography"`
	YearsOfExperience int       `gorm:"not null" json:"years_of_experience"`
	AthleteType       string    `gorm:"size:20;not null" json:"athlete_type"`
	LanguagesSpoken   string    `gorm:"size:255;not null" json:"languages_spoken"`
	MedalsAndAwards   *string   `gorm:"type:text" json:"medals_and_awards"`
	CompetingSince    time.Time `gorm:"not null" json:"competing_since"`
	Goals             string    `gorm:"type:text;not null" json:"goals"`
	ProfilePhotoURL   *string   `gorm:"size:512" json:"profile_photo_url"`
	SkillLevel        *string   `gorm:"size:20" json:"skill_level"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
