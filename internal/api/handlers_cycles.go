package api

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/blossomhealth/blossom/internal/models"
	"github.com/blossomhealth/blossom/internal/services"
	"github.com/gofiber/fiber/v2"
)

type cycleRecordInput struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PeriodLength int    `json:"period_length"`
}

func (handler *Handler) ListCycleRecords(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	records, err := handler.cycleService.ListRecords(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	payload := make([]fiber.Map, 0, len(records))
	for _, record := range records {
		payload = append(payload, cycleRecordJSON(record))
	}
	return c.JSON(payload)
}

func (handler *Handler) CreateCycleRecord(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input cycleRecordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.StartDate) == "" || strings.TrimSpace(input.EndDate) == "" || input.PeriodLength == 0 {
		return apiError(c, fiber.StatusBadRequest, "All fields are required.")
	}

	startDate, err := parseDateField(input.StartDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
	}
	endDate, err := parseDateField(input.EndDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
	}

	record, err := handler.cycleService.LogPeriod(user.ID, startDate, endDate, input.PeriodLength)
	if err != nil {
		if errors.Is(err, services.ErrEndBeforeStart) {
			return apiError(c, fiber.StatusBadRequest, "End date cannot be before start date.")
		}
		if errors.Is(err, services.ErrInvalidPeriodLength) {
			return apiError(c, fiber.StatusBadRequest, "Period length must be a positive integer.")
		}
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Period data saved successfully",
		"record":  cycleRecordJSON(record),
	})
}

func (handler *Handler) DeleteCycleRecord(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recordID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid record id")
	}

	if err := handler.cycleService.DeleteRecord(user.ID, uint(recordID)); err != nil {
		if errors.Is(err, services.ErrCycleRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "record not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) PredictNextCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	prediction, err := handler.cycleService.PredictNextCycle(user.ID, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if prediction.NoData {
		return c.JSON(fiber.Map{
			"message":              prediction.Message,
			"suggestion":           prediction.Suggestion,
			"next_period_start":    nil,
			"next_period_end":      nil,
			"fertile_window_start": nil,
			"fertile_window_end":   nil,
			"cycle_progress":       0,
		})
	}

	return c.JSON(fiber.Map{
		"next_period_start":    nullableDate(prediction.NextPeriodStart),
		"next_period_end":      nullableDate(prediction.NextPeriodEnd),
		"fertile_window_start": nullableDate(prediction.FertileWindowStart),
		"fertile_window_end":   nullableDate(prediction.FertileWindowEnd),
		"avg_cycle_length":     prediction.AvgCycleLength,
		"avg_period_length":    prediction.AvgPeriodLength,
		"cycle_progress":       math.Round(prediction.CycleProgress*10) / 10,
	})
}

func cycleRecordJSON(record models.CycleRecord) fiber.Map {
	return fiber.Map{
		"id":            record.ID,
		"start_date":    formatDate(record.StartDate),
		"end_date":      formatDate(record.EndDate),
		"cycle_length":  record.CycleLength,
		"period_length": record.PeriodLength,
	}
}
