package db

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/blossomhealth/blossom/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "blossom-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return database
}

func seedTestUser(t *testing.T, database *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Username:     "ivy",
		Email:        "ivy@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := NewUserRepository(database).Create(&user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func day(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestMergeForDate_CreatesThenMerges(t *testing.T) {
	database := openTestDatabase(t)
	user := seedTestUser(t, database)
	repo := NewSymptomLogRepository(database)

	cycleDay := 3
	created, merged, err := repo.MergeForDate(user.ID, day("2024-01-03"), []string{"Cramps"}, &cycleDay)
	if err != nil {
		t.Fatalf("MergeForDate() create: %v", err)
	}
	if merged {
		t.Fatalf("expected a fresh entry on first submission")
	}
	if !reflect.DeepEqual(created.Symptoms, []string{"Cramps"}) {
		t.Fatalf("expected symptoms [Cramps], got %v", created.Symptoms)
	}

	updated, merged, err := repo.MergeForDate(user.ID, day("2024-01-03"), []string{"Fatigue", "Cramps"}, &cycleDay)
	if err != nil {
		t.Fatalf("MergeForDate() merge: %v", err)
	}
	if !merged {
		t.Fatalf("expected a merge on the second submission for the same date")
	}
	if !reflect.DeepEqual(updated.Symptoms, []string{"Cramps", "Fatigue"}) {
		t.Fatalf("expected union [Cramps Fatigue] preserving first-seen order, got %v", updated.Symptoms)
	}

	var count int64
	if err := database.Model(&models.SymptomLog{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row per user and date, got %d", count)
	}
}

func TestMergeForDate_IdempotentResubmission(t *testing.T) {
	database := openTestDatabase(t)
	user := seedTestUser(t, database)
	repo := NewSymptomLogRepository(database)

	if _, _, err := repo.MergeForDate(user.ID, day("2024-01-03"), []string{"Cramps"}, nil); err != nil {
		t.Fatalf("MergeForDate() create: %v", err)
	}
	entry, merged, err := repo.MergeForDate(user.ID, day("2024-01-03"), []string{"Cramps"}, nil)
	if err != nil {
		t.Fatalf("MergeForDate() resubmit: %v", err)
	}
	if !merged {
		t.Fatalf("expected the resubmission to merge")
	}
	if !reflect.DeepEqual(entry.Symptoms, []string{"Cramps"}) {
		t.Fatalf("expected resubmission to leave symptoms unchanged, got %v", entry.Symptoms)
	}
}

func TestDeleteByUserAndDate(t *testing.T) {
	database := openTestDatabase(t)
	user := seedTestUser(t, database)
	repo := NewSymptomLogRepository(database)

	if _, _, err := repo.MergeForDate(user.ID, day("2024-01-03"), []string{"Cramps"}, nil); err != nil {
		t.Fatalf("MergeForDate() create: %v", err)
	}
	if err := repo.DeleteByUserAndDate(user.ID, day("2024-01-03")); err != nil {
		t.Fatalf("DeleteByUserAndDate() unexpected error: %v", err)
	}
	if err := repo.DeleteByUserAndDate(user.ID, day("2024-01-03")); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected gorm.ErrRecordNotFound for a missing row, got %v", err)
	}
}

func TestListWithCycleDay_OrdersByCycleDay(t *testing.T) {
	database := openTestDatabase(t)
	user := seedTestUser(t, database)
	repo := NewSymptomLogRepository(database)

	daySeven := 7
	dayTwo := 2
	if _, _, err := repo.MergeForDate(user.ID, day("2024-01-07"), []string{"Bloating"}, &daySeven); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	if _, _, err := repo.MergeForDate(user.ID, day("2024-01-02"), []string{"Cramps"}, &dayTwo); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	if _, _, err := repo.MergeForDate(user.ID, day("2024-02-20"), []string{"Headache"}, nil); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	entries, err := repo.ListWithCycleDay(user.ID)
	if err != nil {
		t.Fatalf("ListWithCycleDay() unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries with a cycle day, got %d", len(entries))
	}
	if *entries[0].CycleDay != 2 || *entries[1].CycleDay != 7 {
		t.Fatalf("expected entries ordered by cycle day, got %d then %d", *entries[0].CycleDay, *entries[1].CycleDay)
	}
}
