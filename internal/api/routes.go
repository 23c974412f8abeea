package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListCycleRecords)
	cycles.Post("", handler.CreateCycleRecord)
	cycles.Get("/prediction", handler.PredictNextCycle)
	cycles.Delete("/:id", handler.DeleteCycleRecord)

	symptomLogs := api.Group("/symptom-logs", handler.AuthRequired)
	symptomLogs.Get("", handler.ListSymptomLogs)
	symptomLogs.Post("", handler.LogSymptoms)
	symptomLogs.Get("/report", handler.SymptomCorrelationReport)
	symptomLogs.Delete("/:date", handler.DeleteSymptomLog)

	articles := api.Group("/articles", handler.AuthRequired)
	articles.Get("", handler.ListArticles)
	articles.Get("/categories", handler.ListArticleCategories)

	api.Post("/chatbot", handler.AuthRequired, handler.Chatbot)
}
