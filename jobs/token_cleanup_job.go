package jobs

import (
	"log"
	"time"

	"github.com/athlixir/athlixir_backend/database"
	"github.com/athlixir/athlixir_backend/models"
)

// CleanupExpiredResetTokens clears password-reset tokens that have passed
// their expiry so stale links stop matching.
func CleanupExpiredResetTokens() {
	log.Println("Running job: CleanupExpiredResetTokens...")

	result := database.DB.Model(&models.User{}).
		Where("reset_password_token IS NOT NULL AND reset_password_token_expires_at < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})

	if result.Error != nil {
		log.Printf("Error cleaning up expired reset tokens: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Cleared %d expired password reset tokens", result.RowsAffected)
	}
}
