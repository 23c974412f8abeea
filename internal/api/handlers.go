package api

import (
	"time"

	"github.com/blossomhealth/blossom/internal/db"
	"github.com/blossomhealth/blossom/internal/services"
	"gorm.io/gorm"
)

const authTokenTTL = 7 * 24 * time.Hour

type Handler struct {
	secretKey []byte
	location  *time.Location

	repositories      *db.Repositories
	authService       *services.AuthService
	cycleService      *services.CycleService
	symptomLogService *services.SymptomLogService
	articleService    *services.ArticleService
	chatbotService    *services.ChatbotService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, chatbot *services.ChatbotService) *Handler {
	if location == nil {
		location = time.UTC
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:         []byte(secret),
		location:          location,
		repositories:      repositories,
		authService:       services.NewAuthService(repositories.Users),
		cycleService:      services.NewCycleService(repositories.CycleRecords, repositories.SymptomLogs),
		symptomLogService: services.NewSymptomLogService(repositories.SymptomLogs, repositories.CycleRecords),
		articleService:    services.NewArticleService(repositories.Articles),
		chatbotService:    chatbot,
	}
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}
