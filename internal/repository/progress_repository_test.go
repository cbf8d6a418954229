package repository

import (
	"skillmaster_backend/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newProgressTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Progress{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestEnsureUnlocked_ReusesExistingRow(t *testing.T) {
	db := newProgressTestDB(t)
	repo := NewProgressRepository(db)

	first, err := repo.EnsureUnlocked(nil, "user-1", 7)
	if err != nil {
		t.Fatalf("EnsureUnlocked() error = %v", err)
	}
	second, err := repo.EnsureUnlocked(nil, "user-1", 7)
	if err != nil {
		t.Fatalf("repeated EnsureUnlocked() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same unlock row, got ids %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&model.Progress{}).Where("unlocked = ?", true).Count(&count)
	if count != 1 {
		t.Errorf("unlock rows = %d, want 1", count)
	}
}

// The unique index on unlock_key is what makes concurrent unlock writers safe:
// even two inserts that both missed the existing row cannot produce duplicates.
func TestUnlockRowUniquePerUserAndLesson(t *testing.T) {
	db := newProgressTestDB(t)

	lessonID := uint(7)
	key := model.UnlockKeyFor("user-1", lessonID)
	row := model.Progress{UserID: "user-1", LessonID: &lessonID, Unlocked: true, UnlockKey: &key}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create unlock row: %v", err)
	}

	dupKey := model.UnlockKeyFor("user-1", lessonID)
	dup := model.Progress{UserID: "user-1", LessonID: &lessonID, Unlocked: true, UnlockKey: &dupKey}
	if err := db.Create(&dup).Error; err == nil {
		t.Fatal("expected a unique constraint violation for a second unlock row")
	}
}

func TestAttemptRowsNotLimitedByUnlockIndex(t *testing.T) {
	db := newProgressTestDB(t)
	repo := NewProgressRepository(db)

	lessonID := uint(7)
	activityID := uint(3)
	score := 67
	for i := 0; i < 3; i++ {
		attempt := &model.Progress{
			UserID:     "user-1",
			LessonID:   &lessonID,
			ActivityID: &activityID,
			Completed:  true,
			Score:      &score,
		}
		if err := repo.Create(attempt); err != nil {
			t.Fatalf("attempt #%d error = %v", i, err)
		}
	}

	entries, err := repo.ListByUserAndLesson("user-1", lessonID)
	if err != nil {
		t.Fatalf("ListByUserAndLesson() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("attempt rows = %d, want 3", len(entries))
	}
}
