package services

import (
	"strings"

	"github.com/blossomhealth/blossom/internal/models"
)

type ArticleRepository interface {
	ExistsByTitleAndSource(title string, source string) (bool, error)
	Create(article *models.Article) error
	List(categoryName string, search string) ([]models.Article, error)
	ListCategories() ([]models.Category, error)
	FindOrCreateCategory(name string) (models.Category, error)
}

type ArticleService struct {
	articles ArticleRepository
}

func NewArticleService(articles ArticleRepository) *ArticleService {
	return &ArticleService{articles: articles}
}

func (service *ArticleService) ListArticles(categoryName string, search string) ([]models.Article, error) {
	return service.articles.List(strings.TrimSpace(categoryName), strings.TrimSpace(search))
}

func (service *ArticleService) ListCategories() ([]models.Category, error) {
	return service.articles.ListCategories()
}
