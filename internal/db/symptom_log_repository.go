package db

import (
	"time"

	"github.com/blossomhealth/blossom/internal/models"
	"gorm.io/gorm"
)

type SymptomLogRepository struct {
	database *gorm.DB
}

func NewSymptomLogRepository(database *gorm.DB) *SymptomLogRepository {
	return &SymptomLogRepository{database: database}
}

func (repo *SymptomLogRepository) ListByUser(userID uint) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListWithCycleDay returns entries that have a derived cycle day, ordered
// by cycle day ascending. This is the correlator's input.
func (repo *SymptomLogRepository) ListWithCycleDay(userID uint) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	if err := repo.database.
		Where("user_id = ? AND cycle_day IS NOT NULL", userID).
		Order("cycle_day ASC, date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// MergeForDate creates the entry for (user, date) or merges the submitted
// symptoms into the existing one. The read-modify-write runs in a single
// transaction so two submissions for the same day cannot lose updates.
// The returned bool reports whether an existing entry was merged.
func (repo *SymptomLogRepository) MergeForDate(userID uint, date time.Time, symptoms []string, cycleDay *int) (models.SymptomLog, bool, error) {
	var saved models.SymptomLog
	merged := false

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var entry models.SymptomLog
		result := tx.
			Where("user_id = ? AND date = ?", userID, date).
			Limit(1).
			Find(&entry)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			entry = models.SymptomLog{
				UserID:   userID,
				Date:     date,
				Symptoms: unionSymptomSets(nil, symptoms),
				CycleDay: cycleDay,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			saved = entry
			return nil
		}

		merged = true
		entry.Symptoms = unionSymptomSets(entry.Symptoms, symptoms)
		entry.CycleDay = cycleDay
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}
		saved = entry
		return nil
	})
	if err != nil {
		return models.SymptomLog{}, false, err
	}
	return saved, merged, nil
}

func (repo *SymptomLogRepository) UpdateCycleDay(entry *models.SymptomLog) error {
	return repo.database.Model(entry).Select("cycle_day").Updates(map[string]any{
		"cycle_day": entry.CycleDay,
	}).Error
}

func (repo *SymptomLogRepository) DeleteByUserAndDate(userID uint, date time.Time) error {
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.SymptomLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// unionSymptomSets keeps the existing order, appends unseen labels in
// submission order, and drops duplicates. Labels are case-sensitive.
func unionSymptomSets(existing []string, submitted []string) []string {
	combined := make([]string, 0, len(existing)+len(submitted))
	seen := make(map[string]struct{}, len(existing)+len(submitted))
	for _, label := range existing {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		combined = append(combined, label)
	}
	for _, label := range submitted {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		combined = append(combined, label)
	}
	return combined
}
