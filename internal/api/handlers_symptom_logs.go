package api

import (
	"errors"

	"github.com/blossomhealth/blossom/internal/models"
	"github.com/blossomhealth/blossom/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type symptomLogInput struct {
	Date     string   `json:"date"`
	Symptoms []string `json:"symptoms"`
}

func (handler *Handler) ListSymptomLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logs, err := handler.symptomLogService.ListEntries(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	payload := make([]fiber.Map, 0, len(logs))
	for _, entry := range logs {
		payload = append(payload, symptomLogJSON(entry))
	}
	return c.JSON(fiber.Map{
		"logs":            payload,
		"symptom_options": models.DefaultSymptomOptions(),
	})
}

func (handler *Handler) LogSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input symptomLogInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	date := handler.now()
	if input.Date != "" {
		parsed, err := parseDateField(input.Date, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		}
		date = parsed
	}

	entry, merged, err := handler.symptomLogService.LogSymptoms(user.ID, date, input.Symptoms)
	if err != nil {
		if errors.Is(err, services.ErrEmptySymptomList) {
			return apiError(c, fiber.StatusBadRequest, "At least one symptom is required.")
		}
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if merged {
		return c.JSON(fiber.Map{
			"message":           "Symptoms updated for this date",
			"combined_symptoms": entry.Symptoms,
			"cycle_day":         entry.CycleDay,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Symptoms logged successfully",
		"cycle_day": entry.CycleDay,
	})
}

func (handler *Handler) SymptomCorrelationReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	report, err := handler.symptomLogService.BuildCorrelationReport(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if report.NoData {
		return c.JSON(fiber.Map{
			"message":               report.Message,
			"symptoms_by_cycle_day": report.SymptomsByCycleDay,
			"symptom_ranges":        report.SymptomRanges,
		})
	}
	return c.JSON(fiber.Map{
		"symptoms_by_cycle_day": report.SymptomsByCycleDay,
		"symptom_ranges":        report.SymptomRanges,
	})
}

func (handler *Handler) DeleteSymptomLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	date, err := parseDateField(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
	}

	if err := handler.symptomLogService.DeleteEntry(user.ID, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "log not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func symptomLogJSON(entry models.SymptomLog) fiber.Map {
	return fiber.Map{
		"id":        entry.ID,
		"date":      formatDate(entry.Date),
		"symptoms":  entry.Symptoms,
		"cycle_day": entry.CycleDay,
	}
}
