package model

import "fmt"

// Progress records a user's interaction with a lesson or activity.
// Attempt rows are append-only; unlock rows carry an UnlockKey so the database
// enforces at most one unlock per (user, lesson) even under concurrent writers.
type Progress struct {
	BaseModel
	UserID     string  `gorm:"size:100;index;not null;index:ix_progress_user_lesson" json:"userId"`
	SubjectID  *uint   `gorm:"index" json:"subjectId,omitempty"`
	ModuleID   *uint   `gorm:"index" json:"moduleId,omitempty"`
	LessonID   *uint   `gorm:"index;index:ix_progress_user_lesson" json:"lessonId,omitempty"`
	ActivityID *uint   `gorm:"index" json:"activityId,omitempty"`
	Completed  bool    `gorm:"default:false" json:"completed"`
	Unlocked   bool    `gorm:"default:false" json:"unlocked"`
	UnlockKey  *string `gorm:"size:130;uniqueIndex:ux_progress_unlock" json:"-"`
	Score      *int    `json:"score,omitempty"`
}

// UnlockKeyFor is the unique marker stored on unlock rows. Attempt rows leave
// it NULL, which never collides under the unique index.
func UnlockKeyFor(userID string, lessonID uint) string {
	return fmt.Sprintf("%s:%d", userID, lessonID)
}

func (Progress) TableName() string {
	return "progress"
}
