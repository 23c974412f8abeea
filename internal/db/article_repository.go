package db

import (
	"github.com/blossomhealth/blossom/internal/models"
	"gorm.io/gorm"
)

type ArticleRepository struct {
	database *gorm.DB
}

func NewArticleRepository(database *gorm.DB) *ArticleRepository {
	return &ArticleRepository{database: database}
}

func (repo *ArticleRepository) ExistsByTitleAndSource(title string, source string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Article{}).
		Where("title = ? AND source = ?", title, source).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *ArticleRepository) Create(article *models.Article) error {
	return repo.database.Create(article).Error
}

// List returns articles newest first, optionally filtered by category
// name and a case-insensitive title/content search term.
func (repo *ArticleRepository) List(categoryName string, search string) ([]models.Article, error) {
	query := repo.database.Model(&models.Article{}).Preload("Category")
	if categoryName != "" {
		query = query.
			Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.name = ?", categoryName)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("articles.title LIKE ? OR articles.content LIKE ?", pattern, pattern)
	}

	articles := make([]models.Article, 0)
	if err := query.Order("articles.published_at DESC, articles.id DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (repo *ArticleRepository) ListCategories() ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := repo.database.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindOrCreateCategory returns the named category, creating it on first use.
func (repo *ArticleRepository) FindOrCreateCategory(name string) (models.Category, error) {
	var category models.Category
	if err := repo.database.
		Where("name = ?", name).
		FirstOrCreate(&category, models.Category{Name: name}).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}
