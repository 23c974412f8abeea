package services

import (
	"math"
	"sort"
	"time"

	"github.com/blossomhealth/blossom/internal/models"
)

const (
	NoDataMessage    = "No data available for predictions"
	NoDataSuggestion = "Log your first period to start tracking predictions."

	fertileWindowOffsetDays = 14
	fertileWindowSpanDays   = 5
)

// CyclePrediction is the forecast built from a user's cycle history. When
// NoData is set the date fields are zero and only the message and
// suggestion are meaningful.
type CyclePrediction struct {
	NoData             bool
	Message            string
	Suggestion         string
	NextPeriodStart    time.Time
	NextPeriodEnd      time.Time
	FertileWindowStart time.Time
	FertileWindowEnd   time.Time
	AvgCycleLength     int
	AvgPeriodLength    int
	CycleProgress      float64
}

// BuildCyclePrediction forecasts the next cycle from the user's records.
// It is pure computation over validated input: records may arrive in any
// order, and an empty set yields the no-data variant rather than an error.
func BuildCyclePrediction(records []models.CycleRecord, today time.Time) CyclePrediction {
	if len(records) == 0 {
		return CyclePrediction{
			NoData:     true,
			Message:    NoDataMessage,
			Suggestion: NoDataSuggestion,
		}
	}

	sorted := make([]models.CycleRecord, 0, len(records))
	sorted = append(sorted, records...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartDate.Equal(sorted[j].StartDate) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})

	avgCycleLength := averageCycleLength(sorted)
	avgPeriodLength := averagePeriodLength(sorted)

	anchor := sorted[0]
	nextPeriodStart := dateOnly(anchor.StartDate).AddDate(0, 0, avgCycleLength)
	nextPeriodEnd := nextPeriodStart.AddDate(0, 0, avgPeriodLength)
	fertileWindowStart := nextPeriodStart.AddDate(0, 0, -fertileWindowOffsetDays)
	fertileWindowEnd := fertileWindowStart.AddDate(0, 0, fertileWindowSpanDays)

	return CyclePrediction{
		NextPeriodStart:    nextPeriodStart,
		NextPeriodEnd:      nextPeriodEnd,
		FertileWindowStart: fertileWindowStart,
		FertileWindowEnd:   fertileWindowEnd,
		AvgCycleLength:     avgCycleLength,
		AvgPeriodLength:    avgPeriodLength,
		CycleProgress:      cycleProgress(anchor.EndDate, avgCycleLength, today),
	}
}

// averageCycleLength derives interval lengths from consecutive start dates
// (newest first) and rounds their mean. A single record has no intervals
// and falls back to the default.
func averageCycleLength(sortedDesc []models.CycleRecord) int {
	if len(sortedDesc) < 2 {
		return models.DefaultCycleLength
	}

	total := 0
	intervals := 0
	for i := 0; i+1 < len(sortedDesc); i++ {
		later := dateOnly(sortedDesc[i].StartDate)
		earlier := dateOnly(sortedDesc[i+1].StartDate)
		total += daysBetween(earlier, later)
		intervals++
	}
	return int(math.Round(float64(total) / float64(intervals)))
}

func averagePeriodLength(records []models.CycleRecord) int {
	total := 0
	for _, record := range records {
		total += record.PeriodLength
	}
	return int(math.Round(float64(total) / float64(len(records))))
}

// cycleProgress reports how far through the current cycle today is, as a
// percentage of the average cycle length measured from the anchor period's
// end. Clamped to [0, 100].
func cycleProgress(anchorEnd time.Time, avgCycleLength int, today time.Time) float64 {
	if avgCycleLength <= 0 {
		return 0
	}
	elapsed := daysBetween(dateOnly(anchorEnd), dateOnly(today))
	progress := float64(elapsed) / float64(avgCycleLength) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func daysBetween(earlier time.Time, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
