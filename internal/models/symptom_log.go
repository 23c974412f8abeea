package models

import "time"

// SymptomLog is one day's symptom observation. At most one row exists per
// (user, date); repeated submissions merge into the existing row. CycleDay
// is derived from the covering period and is nil when none covers the date.
type SymptomLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_symptom_user_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_symptom_user_date"`
	Symptoms  []string  `gorm:"serializer:json"`
	CycleDay  *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSymptomOptions mirrors the catalog the tracking UI offers.
func DefaultSymptomOptions() []string {
	return []string{
		"Cramps", "Headache", "Bloating", "Mood Swings", "Fatigue",
		"Nausea", "Acne", "Back Pain", "Food Cravings", "Insomnia",
	}
}
