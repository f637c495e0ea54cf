package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentNotVerified = "Not Verified"
	DocumentNeedsReview = "Needs Review"
	DocumentVerified    = "Verified"
)

type Document struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"not null;index" json:"user_id"`

	DocumentType string `gorm:"size:100;not null" json:"document_type"`
	FileName     string `gorm:"size:255;not null" json:"file_name"`
	OriginalName string `gorm:"size:255;not null" json:"original_name"`
	FileURL      string `gorm:"type:text;not null" json:"file_url"`
	MimeType     string `gorm:"size:100;not null" json:"mime_type"`
	FileSize     int64  `gorm:"not null" json:"file_size"`

	VerificationStatus string     `gorm:"size:20;not null;default:'Not Verified'" json:"verification_status"`
	VerificationNotes  *string    `gorm:"type:text" json:"verification_notes"`
	VerifiedAt         *time.Time `json:"verified_at"`
	IssuingAuthority   string     `gorm:"size:255;default:'Unknown'" json:"issuing_authority"`
	IssueDate          *time.Time `json:"issue_date"`
	ExpiryDate         *time.Time `json:"expiry_date"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	UploadedAt time.Time `json:"uploaded_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
