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

type AthleteProfileRequest struct {
	FullName          string  `json:"full_name" validate:"required"`
	Address           string  `json:"address" validate:"required"`
	District          string  `json:"district" validate:"required"`
	State             string  `json:"state" validate:"required"`
	Phone             string  `json:"phone" validate:"required"`
	Nationality       string  `json:"nationality" validate:"required"`
	DateOfBirth       string  `json:"date_of_birth" validate:"required"`
	Gender            string  `json:"gender" validate:"required,oneof=male female other"`
	SportsCategory    string  `json:"sports_category" validate:"required"`
	Biography         string  `json:"biography" validate:"required"`
	YearsOfExperience int     `json:"years_of_experience" validate:"min=0"`
	AthleteType       string  `json:"athlete_type" validate:"required,oneof=athlete para-athlete"`
	LanguagesSpoken   string  `json:"languages_spoken" validate:"required"`
	MedalsAndAwards   *string `json:"medals_and_awards"`
	CompetingSince    string  `json:"competing_since" validate:"required"`
	Goals             string  `json:"goals" validate:"required"`
	ProfilePhotoURL   *string `json:"profile_photo_url"`
	SkillLevel        *string `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced professional"`
}

// SaveAthleteProfile creates or updates the caller's athlete profile and, on
// first creation, flips the user's profile-completed flag.
func SaveAthleteProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req AthleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date_of_birth, expected YYYY-MM-DD"})
	}
	competingSince, err := time.Parse("2006-01-02", req.CompetingSince)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid competing_since, expected YYYY-MM-DD"})
	}

	fields := models.Athlete{
		UserID:            userID,
		Email:             email,
		FullName:          req.FullName,
		Address:           req.Address,
		District:          req.District,
		State:             req.State,
		Phone:             req.Phone,
		Nationality:       req.Nationality,
		DateOfBirth:       dob,
		Gender:            req.Gender,
		SportsCategory:    req.SportsCategory,
		Biography:         req.Biography,
		YearsOfExperience: req.YearsOfExperience,
		AthleteType:       req.AthleteType,
		LanguagesSpoken:   req.LanguagesSpoken,
		MedalsAndAwards:   req.MedalsAndAwards,
		CompetingSince:    competingSince,
		Goals:             req.Goals,
		ProfilePhotoURL:   req.ProfilePhotoURL,
		SkillLevel:        req.SkillLevel,
	}

	var athlete models.Athlete
	err = database.DB.Where("email = ?", email).First(&athlete).Error
	if err == nil {
		fields.ID = athlete.ID
		if err := database.DB.Model(&athlete).Updates(&fields).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
		}
		return c.JSON(athlete)
	}

	if err := database.DB.Create(&fields).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save profile"})
	}

	database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_completed", true)

	return c.JSON(fields)
}

func GetAthleteProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var athlete models.Athlete
	if err := database.DB.Where("email = ?", email).First(&athlete).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Athlete profile not found"})
	}

	return c.JSON(athlete)
}

func GetAthleteProfileByEmail(c *fiber.Ctx) error {
	email := c.Params("email")

	var athlete models.Athlete
	if err := database.DB.Where("email = ?", email).First(&athlete).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Athlete profile not found"})
	}

	return c.JSON(athlete)
}

// GetAthleteStats serves medal tallies from a short-lived cache so the
// dashboard can poll without hammering the achievements table.
func GetAthleteStats(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	stats, err := services.AthleteStats(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute stats"})
	}

	return c.JSON(stats)
}
