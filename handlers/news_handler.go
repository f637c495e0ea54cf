package handlers

import (
	"strconv"

	"github.com/athlixir/athlixir_backend/services"
	"github.com/gofiber/fiber/v2"
)

func GetSportsNews(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))

	news, err := services.SearchNews("sports", page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Error fetching news from external API"})
	}

	return c.JSON(news)
}

func GetNewsByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))

	news, err := services.SearchNews(category, page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Error fetching category news from external API"})
	}

	return c.JSON(news)
}

func GetTrendingNews(c *fiber.Ctx) error {
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "5"))

	news, err := services.TrendingNews(pageSize)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Error fetching trending news from external API"})
	}

	return c.JSON(news)
}

func SearchNews(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Search query is required"})
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))

	news, err := services.SearchNews(query, page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Error searching news from external API"})
	}

	return c.JSON(news)
}
