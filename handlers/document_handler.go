package handlers

import (
	"time"

	"github.com/athlixir/athlixir_backend/database"
	"github.com/athlixir/athlixir_backend/models"
	"github.com/athlixir/athlixir_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type DocumentRequest struct {
	DocumentType string `json:"document_type" validate:"required"`
	FileName     string `json:"file_name" validate:"required"`
	OriginalName string `json:"original_name" validate:"required"`
	FileURL      string `json:"file_url" validate:"required,url"`
	MimeType     string `json:"mime_type" validate:"required"`
	FileSize     int64  `json:"file_size" validate:"required,min=1"`
}

// CreateDocument records an upload the client has already pushed to
// Cloudinary (see GenerateUploadSignature) and runs the first-pass
// verification heuristic over it.
func CreateDocument(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req DocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status, _ := services.VerifyDocumentName(req.DocumentType, req.OriginalName)

	now := time.Now()
	document := models.Document{
		UserID:             userID,
		DocumentType:       req.DocumentType,
		FileName:           req.FileName,
		OriginalName:       req.OriginalName,
		FileURL:            req.FileURL,
		MimeType:           req.MimeType,
		FileSize:           req.FileSize,
		VerificationStatus: status,
		IssuingAuthority:   "Unknown",
		UploadedAt:         now,
	}
	if status == models.DocumentVerified {
		document.VerifiedAt = &now
	}

	if err := database.DB.Create(&document).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save document"})
	}

	return c.Status(fiber.StatusCreated).JSON(document)
}

func GetDocuments(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var documents []models.Document
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("uploaded_at desc").
		Find(&documents).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch documents"})
	}

	return c.JSON(documents)
}

func GetDocument(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}

	var document models.Document
	if err := database.DB.Where("id = ?", documentID).First(&document).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}
	if document.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to access this document"})
	}

	return c.JSON(document)
}

func DeleteDocument(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}

	var document models.Document
	if err := database.DB.Where("id = ?", documentID).First(&document).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}
	if document.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to delete this document"})
	}

	if err := database.DB.Delete(&document).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete document"})
	}

	return c.JSON(fiber.Map{"message": "Document removed"})
}
