package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/athlixir/athlixir_backend/configs"
	"github.com/athlixir/athlixir_backend/database"
	"github.com/athlixir/athlixir_backend/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const certificateGoldThreshold = 5

// CheckAndGenerateCertificate issues a champion certificate PDF once an
// athlete's gold-medal count reaches the threshold. Runs in the background
// after an achievement write; failures are logged, never surfaced.
func CheckAndGenerateCertificate(athleteEmail string) {
	var goldCount int64
	database.DB.Model(&models.Achievement{}).
		Where("athlete_email = ? AND medal_type = ?", athleteEmail, "gold").
		Count(&goldCount)

	if goldCount < certificateGoldThreshold {
		return
	}

	var athlete models.Athlete
	if err := database.DB.Where("email = ?", athleteEmail).First(&athlete).Error; err != nil {
		log.Printf("🔥 No athlete profile for %s, skipping certificate", athleteEmail)
		return
	}

	title := fmt.Sprintf("Champion Athlete - %s - %d Gold Medals", athlete.SportsCategory, certificateGoldThreshold)

	var existing models.Certificate
	if err := database.DB.Where("athlete_email = ? AND title = ?", athleteEmail, title).First(&existing).Error; err == nil {
		return
	}

	htmlData, err := generateCertificateHTML(athlete.FullName, athlete.SportsCategory, title)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, athleteEmail)
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		AthleteEmail: athleteEmail,
		Title:        title,
		IssuedAt:     time.Now(),
		FileURL:      uploadURL,
	}

	if err := database.DB.Create(&newCertificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for %s: %v", athleteEmail, err)
	} else {
		log.Printf("✅ Generated and uploaded certificate '%s' for %s.", title, athleteEmail)
	}
}

func generateCertificateHTML(athleteName, sportsCategory, title string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		AthleteName    string
		SportsCategory string
		Title          string
		IssuedDate     string
	}{
		AthleteName:    athleteName,
		SportsCategory: sportsCategory,
		Title:          title,
		IssuedDate:     time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, athleteEmail string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", athleteEmail, uuid.New().String()),
		Folder:       "athlixir_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
