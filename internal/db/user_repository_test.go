package db

import (
	"testing"

	"github.com/blossomhealth/blossom/internal/models"
)

func TestExistsByNormalizedEmail(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewUserRepository(database)

	user := models.User{
		Username:     "ivy",
		Email:        "Ivy@Example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	exists, err := repo.ExistsByNormalizedEmail("ivy@example.com")
	if err != nil {
		t.Fatalf("ExistsByNormalizedEmail() unexpected error: %v", err)
	}
	if !exists {
		t.Fatalf("expected a case-insensitive email match")
	}

	exists, err = repo.ExistsByNormalizedEmail("other@example.com")
	if err != nil {
		t.Fatalf("ExistsByNormalizedEmail() unexpected error: %v", err)
	}
	if exists {
		t.Fatalf("expected no match for an unknown email")
	}
}

func TestDeleteAccountAndRelatedData(t *testing.T) {
	database := openTestDatabase(t)
	user := seedTestUser(t, database)

	records := NewCycleRecordRepository(database)
	seedCycleRecord(t, records, user.ID, "2024-01-01", "2024-01-05")

	logs := NewSymptomLogRepository(database)
	if _, _, err := logs.MergeForDate(user.ID, day("2024-01-03"), []string{"Cramps"}, nil); err != nil {
		t.Fatalf("seed symptom log: %v", err)
	}

	if err := NewUserRepository(database).DeleteAccountAndRelatedData(user.ID); err != nil {
		t.Fatalf("DeleteAccountAndRelatedData() unexpected error: %v", err)
	}

	var counts [3]int64
	if err := database.Model(&models.User{}).Count(&counts[0]).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if err := database.Model(&models.CycleRecord{}).Count(&counts[1]).Error; err != nil {
		t.Fatalf("count cycle records: %v", err)
	}
	if err := database.Model(&models.SymptomLog{}).Count(&counts[2]).Error; err != nil {
		t.Fatalf("count symptom logs: %v", err)
	}
	for index, count := range counts {
		if count != 0 {
			t.Fatalf("expected table %d emptied with the account, got %d rows", index, count)
		}
	}
}
