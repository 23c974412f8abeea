package api

import (
	"github.com/blossomhealth/blossom/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListArticles(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	articles, err := handler.articleService.ListArticles(c.Query("category"), c.Query("search"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	payload := make([]fiber.Map, 0, len(articles))
	for _, article := range articles {
		payload = append(payload, articleJSON(article))
	}
	return c.JSON(payload)
}

func (handler *Handler) ListArticleCategories(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	categories, err := handler.articleService.ListCategories()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return c.JSON(names)
}

func articleJSON(article models.Article) fiber.Map {
	return fiber.Map{
		"id":           article.ID,
		"title":        article.Title,
		"source":       article.Source,
		"url":          article.URL,
		"content":      article.Content,
		"image_url":    article.ImageURL,
		"category":     article.Category.Name,
		"published_at": nullableDate(article.PublishedAt),
	}
}
