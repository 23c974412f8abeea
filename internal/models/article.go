package models

import "time"

const (
	ArticleSourceHealthFinder = "HealthFinder"
	ArticleSourceWikipedia    = "Wikipedia"
)

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// Article is one ingested health-feed item, unique per (title, source).
type Article struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null;uniqueIndex:uidx_article_title_source"`
	Source      string `gorm:"not null;uniqueIndex:uidx_article_title_source"`
	URL         string `gorm:"not null"`
	Content     string
	ImageURL    string
	Keyword     string
	CategoryID  uint     `gorm:"not null;index"`
	Category    Category `gorm:"foreignKey:CategoryID"`
	PublishedAt time.Time
	CreatedAt   time.Time
}
