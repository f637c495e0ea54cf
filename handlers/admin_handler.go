package handlers

import (
	"time"

	"github.com/athlixir/athlixir_backend/database"
	"github.com/athlixir/athlixir_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func AdminListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

// AdminListPendingDocuments returns every document still waiting on a human
// decision.
func AdminListPendingDocuments(c *fiber.Ctx) error {
	var documents []models.Document
	if err := database.DB.
		Where("verification_status = ?", models.DocumentNeedsReview).
		Order("uploaded_at asc").
		Find(&documents).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch documents"})
	}
	return c.JSON(documents)
}

func AdminReviewDocument(c *fiber.Ctx) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}

	type Request struct {
		Status string  `json:"status" validate:"required,oneof='Verified' 'Needs Review' 'Not Verified'"`
		Notes  *string `json:"notes"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var document models.Document
	if err := database.DB.Where("id = ?", documentID).First(&document).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}

	document.VerificationStatus = req.Status
	document.VerificationNotes = req.Notes
	if req.Status == models.DocumentVerified {
		now := time.Now()
		document.VerifiedAt = &now
	} else {
		document.VerifiedAt = nil
	}

	if err := database.DB.Save(&document).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update document"})
	}

	return c.JSON(document)
}
