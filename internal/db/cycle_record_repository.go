package db

import (
	"time"

	"github.com/blossomhealth/blossom/internal/models"
	"gorm.io/gorm"
)

type CycleRecordRepository struct {
	database *gorm.DB
}

func NewCycleRecordRepository(database *gorm.DB) *CycleRecordRepository {
	return &CycleRecordRepository{database: database}
}

// ListByUserDesc returns the user's records newest first; the first
// element is the prediction anchor.
func (repo *CycleRecordRepository) ListByUserDesc(userID uint) ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindLatestStartingBefore returns the most recent record whose start date
// is on or before the given day.
func (repo *CycleRecordRepository) FindLatestStartingBefore(userID uint, day time.Time) (models.CycleRecord, bool, error) {
	record := models.CycleRecord{}
	result := repo.database.
		Where("user_id = ? AND start_date <= ?", userID, day).
		Order("start_date DESC, id DESC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.CycleRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *CycleRecordRepository) FindByIDForUser(recordID uint, userID uint) (models.CycleRecord, error) {
	var record models.CycleRecord
	if err := repo.database.
		Where("id = ? AND user_id = ?", recordID, userID).
		First(&record).Error; err != nil {
		return models.CycleRecord{}, err
	}
	return record, nil
}

func (repo *CycleRecordRepository) Create(record *models.CycleRecord) error {
	return repo.database.Create(record).Error
}

func (repo *CycleRecordRepository) Delete(record *models.CycleRecord) error {
	return repo.database.Delete(record).Error
}
