package services

import (
	"errors"
	"strings"
	"time"

	"github.com/blossomhealth/blossom/internal/models"
)

var ErrEmptySymptomList = errors.New("symptom list is required")

type SymptomLogRepository interface {
	ListByUser(userID uint) ([]models.SymptomLog, error)
	ListWithCycleDay(userID uint) ([]models.SymptomLog, error)
	MergeForDate(userID uint, date time.Time, symptoms []string, cycleDay *int) (models.SymptomLog, bool, error)
	DeleteByUserAndDate(userID uint, date time.Time) error
}

type SymptomLogService struct {
	logs    SymptomLogRepository
	records CycleRecordRepository
}

func NewSymptomLogService(logs SymptomLogRepository, records CycleRecordRepository) *SymptomLogService {
	return &SymptomLogService{
		logs:    logs,
		records: records,
	}
}

func (service *SymptomLogService) ListEntries(userID uint) ([]models.SymptomLog, error) {
	return service.logs.ListByUser(userID)
}

// LogSymptoms records one day's observation. A submission for a date that
// already has an entry merges the symptom sets instead of replacing them;
// the returned bool reports whether a merge happened. The cycle day is
// derived from the covering period, never taken from the caller.
func (service *SymptomLogService) LogSymptoms(userID uint, date time.Time, symptoms []string) (models.SymptomLog, bool, error) {
	cleaned := make([]string, 0, len(symptoms))
	for _, symptom := range symptoms {
		trimmed := strings.TrimSpace(symptom)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return models.SymptomLog{}, false, ErrEmptySymptomList
	}

	records, err := service.records.ListByUserDesc(userID)
	if err != nil {
		return models.SymptomLog{}, false, err
	}

	var cycleDay *int
	if day, ok := DeriveCycleDay(date, records); ok {
		cycleDay = &day
	}

	return service.logs.MergeForDate(userID, dateOnly(date), cleaned, cycleDay)
}

func (service *SymptomLogService) DeleteEntry(userID uint, date time.Time) error {
	return service.logs.DeleteByUserAndDate(userID, dateOnly(date))
}

// BuildCorrelationReport aggregates all entries that carry a cycle day
// into the two report views.
func (service *SymptomLogService) BuildCorrelationReport(userID uint) (SymptomCorrelation, error) {
	entries, err := service.logs.ListWithCycleDay(userID)
	if err != nil {
		return SymptomCorrelation{}, err
	}
	return BuildSymptomCorrelation(entries), nil
}
