package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/blossomhealth/blossom/internal/api"
	"github.com/blossomhealth/blossom/internal/db"
	"github.com/blossomhealth/blossom/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "blossom.db"))
	port := getEnv("PORT", "8080")
	corsOrigins := getEnv("CORS_ORIGINS", "http://localhost:3000")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	chatbot := buildChatbotService()
	handler := api.NewHandler(database, secretKey, location, chatbot)

	app := fiber.New(fiber.Config{
		AppName:               "Blossom",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	startArticleFetcher(lifecycleCtx, database)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Blossom listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func buildChatbotService() *services.ChatbotService {
	nlu := services.NewDialogflowClient(
		getEnv("NLU_BASE_URL", "http://localhost:5005"),
		os.Getenv("NLU_TOKEN"),
		15*time.Second,
	)
	llm := services.NewOpenAIClient(
		os.Getenv("OPENAI_API_KEY"),
		os.Getenv("OPENAI_BASE_URL"),
		os.Getenv("OPENAI_MODEL"),
		30*time.Second,
	)

	threshold, err := strconv.ParseFloat(getEnv("NLU_CONFIDENCE_THRESHOLD", "0.5"), 64)
	if err != nil {
		log.Printf("invalid NLU_CONFIDENCE_THRESHOLD, using 0.5")
		threshold = 0.5
	}

	return services.NewChatbotService(nlu, llm, services.ChatbotConfig{
		FallbackEnabled:     os.Getenv("OPENAI_API_KEY") != "",
		ConfidenceThreshold: threshold,
	})
}

// startArticleFetcher runs the feed ingestion loop unless the refresh
// interval is set to 0.
func startArticleFetcher(ctx context.Context, database *gorm.DB) {
	hours, err := strconv.Atoi(getEnv("ARTICLE_REFRESH_HOURS", "24"))
	if err != nil || hours < 0 {
		log.Printf("invalid ARTICLE_REFRESH_HOURS, using 24")
		hours = 24
	}
	if hours == 0 {
		log.Printf("article fetcher disabled")
		return
	}

	fetcher := services.NewArticleFetcher(db.NewArticleRepository(database))
	fetcher.Start(ctx, time.Duration(hours)*time.Hour)
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
