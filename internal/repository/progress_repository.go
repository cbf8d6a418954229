package repository

import (
	"skillmaster_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(progress *model.Progress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) ListByUser(userID string) ([]model.Progress, error) {
	var entries []model.Progress
	err := r.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&entries).Error
	return entries, err
}

func (r *ProgressRepository) ListByUserAndLesson(userID string, lessonID uint) ([]model.Progress, error) {
	var entries []model.Progress
	err := r.DB.
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("created_at asc").
		Find(&entries).Error
	return entries, err
}

// EnsureUnlocked upserts the unlock marker for (user, lesson). The unique
// index on unlock_key makes the insert race-safe: when two passing submits
// collide, one inserts and the other falls through to the existing row.
func (r *ProgressRepository) EnsureUnlocked(tx *gorm.DB, userID string, lessonID uint) (*model.Progress, error) {
	if tx == nil {
		tx = r.DB
	}
	key := model.UnlockKeyFor(userID, lessonID)
	entry := model.Progress{
		UserID:    userID,
		LessonID:  &lessonID,
		Unlocked:  true,
		UnlockKey: &key,
	}
	result := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "unlock_key"}},
			DoNothing: true,
		}).
		Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if err := tx.Where("unlock_key = ?", key).First(&entry).Error; err != nil {
			return nil, err
		}
	}
	return &entry, nil
}
