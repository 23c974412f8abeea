package services

import (
	"time"

	"github.com/blossomhealth/blossom/internal/models"
)

// DeriveCycleDay computes the 1-indexed cycle day for a log date: the day
// offset from the covering period, which is the record with the latest
// start date on or before the date. End dates are deliberately ignored; a
// period logged before the symptom date covers it even when the date falls
// outside the bleeding range. Returns false when no record covers the date
// or the offset would be below one.
func DeriveCycleDay(date time.Time, records []models.CycleRecord) (int, bool) {
	day := dateOnly(date)

	var covering *models.CycleRecord
	for index := range records {
		start := dateOnly(records[index].StartDate)
		if start.After(day) {
			continue
		}
		if covering == nil || start.After(dateOnly(covering.StartDate)) {
			covering = &records[index]
		}
	}
	if covering == nil {
		return 0, false
	}

	cycleDay := daysBetween(dateOnly(covering.StartDate), day) + 1
	if cycleDay < 1 {
		return 0, false
	}
	return cycleDay, true
}
