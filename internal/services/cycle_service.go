package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/blossomhealth/blossom/internal/models"
)

var (
	ErrEndBeforeStart      = errors.New("end date cannot be before start date")
	ErrInvalidPeriodLength = errors.New("period length must be a positive integer")
	ErrCycleRecordNotFound = errors.New("cycle record not found")
)

type CycleRecordRepository interface {
	ListByUserDesc(userID uint) ([]models.CycleRecord, error)
	FindLatestStartingBefore(userID uint, day time.Time) (models.CycleRecord, bool, error)
	FindByIDForUser(recordID uint, userID uint) (models.CycleRecord, error)
	Create(record *models.CycleRecord) error
	Delete(record *models.CycleRecord) error
}

type CycleSymptomLogRepository interface {
	ListByUser(userID uint) ([]models.SymptomLog, error)
	UpdateCycleDay(entry *models.SymptomLog) error
}

type CycleService struct {
	records CycleRecordRepository
	logs    CycleSymptomLogRepository
}

func NewCycleService(records CycleRecordRepository, logs CycleSymptomLogRepository) *CycleService {
	return &CycleService{
		records: records,
		logs:    logs,
	}
}

func (service *CycleService) ListRecords(userID uint) ([]models.CycleRecord, error) {
	return service.records.ListByUserDesc(userID)
}

// LogPeriod validates and persists one menstrual period. The stored cycle
// length is the day delta from the previous record's start, falling back
// to the default when there is no prior record or the delta is not
// positive. Stored cycle days on symptom logs are re-derived afterwards so
// a period logged late cannot leave them stale.
func (service *CycleService) LogPeriod(userID uint, startDate time.Time, endDate time.Time, periodLength int) (models.CycleRecord, error) {
	start := dateOnly(startDate)
	end := dateOnly(endDate)
	if end.Before(start) {
		return models.CycleRecord{}, ErrEndBeforeStart
	}
	if periodLength <= 0 {
		return models.CycleRecord{}, ErrInvalidPeriodLength
	}

	cycleLength := models.DefaultCycleLength
	previous, found, err := service.records.FindLatestStartingBefore(userID, start)
	if err != nil {
		return models.CycleRecord{}, err
	}
	if found {
		if delta := daysBetween(dateOnly(previous.StartDate), start); delta > 0 {
			cycleLength = delta
		}
	}

	record := models.CycleRecord{
		UserID:       userID,
		StartDate:    start,
		EndDate:      end,
		CycleLength:  cycleLength,
		PeriodLength: periodLength,
	}
	if err := service.records.Create(&record); err != nil {
		return models.CycleRecord{}, err
	}

	if err := service.RecomputeCycleDays(userID); err != nil {
		return models.CycleRecord{}, err
	}
	return record, nil
}

func (service *CycleService) DeleteRecord(userID uint, recordID uint) error {
	record, err := service.records.FindByIDForUser(recordID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCycleRecordNotFound, err)
	}
	if err := service.records.Delete(&record); err != nil {
		return err
	}
	return service.RecomputeCycleDays(userID)
}

func (service *CycleService) PredictNextCycle(userID uint, today time.Time) (CyclePrediction, error) {
	records, err := service.records.ListByUserDesc(userID)
	if err != nil {
		return CyclePrediction{}, err
	}
	return BuildCyclePrediction(records, today), nil
}

// RecomputeCycleDays re-derives the stored cycle day of every symptom log
// for the user and writes back only the rows whose value changed.
func (service *CycleService) RecomputeCycleDays(userID uint) error {
	records, err := service.records.ListByUserDesc(userID)
	if err != nil {
		return err
	}
	entries, err := service.logs.ListByUser(userID)
	if err != nil {
		return err
	}

	for index := range entries {
		var derived *int
		if day, ok := DeriveCycleDay(entries[index].Date, records); ok {
			derived = &day
		}
		if equalCycleDay(entries[index].CycleDay, derived) {
			continue
		}
		entries[index].CycleDay = derived
		if err := service.logs.UpdateCycleDay(&entries[index]); err != nil {
			return err
		}
	}
	return nil
}

func equalCycleDay(left *int, right *int) bool {
	if left == nil || right == nil {
		return left == right
	}
	return *left == *right
}
