package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "github.com/athlixir/athlixir_backend/configs"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

var EmailClient *BrevoService

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Missing API Key, Sender Email, or Sender Name.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
	}
	log.Println("✅ Email service initialized successfully.")
}

// SendEmail delivers one transactional mail through Brevo. Callers run it in
// a goroutine; failures are logged and dropped.
func SendEmail(recipientName, recipientEmail, subject, htmlContent string) {
	if EmailClient == nil {
		log.Printf("Email service disabled, skipping mail to %s", recipientEmail)
		return
	}

	payload := brevoPayload{
		Sender: map[string]string{
			"name":  EmailClient.SenderName,
			"email": EmailClient.SenderEmail,
		},
		To: []map[string]string{
			{"name": recipientName, "email": recipientEmail},
		},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("🔥 Failed to marshal email payload: %v", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.brevo.com/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		log.Printf("🔥 Failed to build email request: %v", err)
		return
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", EmailClient.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", recipientEmail, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("🔥 Email API error for %s: %s", recipientEmail, fmt.Sprintf("%d %s", resp.StatusCode, string(respBody)))
		return
	}

	log.Printf("✅ Email sent to %s", recipientEmail)
}
