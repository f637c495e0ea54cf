package handlers

import (
	"time"

	"github.com/athlixir/athlixir_backend/database"
	"github.com/athlixir/athlixir_backend/models"
	"github.com/athlixir/athlixir_backend/services"
	ws "github.com/athlixir/athlixir_backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AchievementRequest struct {
	Title             string  `json:"title" validate:"required"`
	Event             string  `json:"event" validate:"required"`
	MedalType         string  `json:"medal_type" validate:"omitempty,oneof=gold silver bronze state national personal"`
	Date              string  `json:"date" validate:"required"`
	StartDate         *string `json:"start_date"`
	EndDate           *string `json:"end_date"`
	Description       *string `json:"description"`
	IsCareerHighlight bool    `json:"is_career_highlight"`
	IsPersonalBest    bool    `json:"is_personal_best"`

	PerformanceDetails []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	} `json:"performance_details"`
}

func GetAchievements(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var achievements []models.Achievement
	if err := database.DB.
		Preload("PerformanceDetails").
		Where("athlete_email = ?", email).
		Order("date desc").
		Find(&achievements).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(achievements)
}

func GetAchievement(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	achievement, status, errMsg := loadOwnedAchievement(c.Params("id"), email)
	if errMsg != "" {
		return c.Status(status).JSON(fiber.Map{"error": errMsg})
	}

	return c.JSON(achievement)
}

func CreateAchievement(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	startDate, endDate := date, date
	if req.StartDate != nil {
		if startDate, err = time.Parse("2006-01-02", *req.StartDate); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date, expected YYYY-MM-DD"})
		}
	}
	if req.EndDate != nil {
		if endDate, err = time.Parse("2006-01-02", *req.EndDate); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date, expected YYYY-MM-DD"})
		}
	}

	medalType := req.MedalType
	if medalType == "" {
		medalType = "gold"
	}

	achievement := models.Achievement{
		AthleteEmail:      email,
		Title:             req.Title,
		Event:             req.Event,
		MedalType:         medalType,
		Date:              date,
		StartDate:         startDate,
		EndDate:           endDate,
		Description:       req.Description,
		IsCareerHighlight: req.IsCareerHighlight,
		IsPersonalBest:    req.IsPersonalBest,
	}
	for _, d := range req.PerformanceDetails {
		achievement.PerformanceDetails = append(achievement.PerformanceDetails, models.PerformanceDetail{
			Label: d.Label,
			Value: d.Value,
		})
	}

	if err := database.DB.Create(&achievement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create achievement"})
	}

	services.InvalidateAthleteStats(email)
	go services.CheckAndGenerateCertificate(email)

	// Live update for the athlete's own dashboard sessions.
	chatHub.Broadcast(email, ws.OutEvent{Event: "achievement_added", Data: achievement})

	return c.Status(fiber.StatusCreated).JSON(achievement)
}

func UpdateAchievement(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	achievement, status, errMsg := loadOwnedAchievement(c.Params("id"), email)
	if errMsg != "" {
		return c.Status(status).JSON(fiber.Map{"error": errMsg})
	}

	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	achievement.Title = req.Title
	achievement.Event = req.Event
	if req.MedalType != "" {
		achievement.MedalType = req.MedalType
	}
	achievement.Date = date
	achievement.Description = req.Description
	achievement.IsCareerHighlight = req.IsCareerHighlight
	achievement.IsPersonalBest = req.IsPersonalBest

	if err := database.DB.Save(achievement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update achievement"})
	}

	services.InvalidateAthleteStats(email)
	chatHub.Broadcast(email, ws.OutEvent{Event: "achievement_updated", Data: achievement})

	return c.JSON(achievement)
}

func DeleteAchievement(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	achievement, status, errMsg := loadOwnedAchievement(c.Params("id"), email)
	if errMsg != "" {
		return c.Status(status).JSON(fiber.Map{"error": errMsg})
	}

	if err := database.DB.Delete(achievement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}

	services.InvalidateAthleteStats(email)
	chatHub.Broadcast(email, ws.OutEvent{Event: "achievement_deleted", Data: fiber.Map{"id": achievement.ID}})

	return c.JSON(fiber.Map{"message": "Achievement removed"})
}

func loadOwnedAchievement(id, email string) (*models.Achievement, int, string) {
	achievementID, err := uuid.Parse(id)
	if err != nil {
		return nil, fiber.StatusNotFound, "Achievement not found"
	}

	var achievement models.Achievement
	if err := database.DB.
		Preload("PerformanceDetails").
		Where("id = ?", achievementID).
		First(&achievement).Error; err != nil {
		return nil, fiber.StatusNotFound, "Achievement not found"
	}

	if achievement.AthleteEmail != email {
		return nil, fiber.StatusForbidden, "Not authorized to access this achievement"
	}

	return &achievement, 0, ""
}
