package service

import (
	"errors"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/repository"
	"skillmaster_backend/internal/util"
	"testing"

	"gorm.io/gorm"
)

func newTestProgressService(t *testing.T) (*ProgressService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewLessonRepository(db),
		repository.NewActivityRepository(db),
	)
	return svc, db
}

func TestMarkLessonCompleted(t *testing.T) {
	svc, db := newTestProgressService(t)
	lesson, _ := seedLessons(t, db)

	score := 85
	entry, err := svc.MarkLessonCompleted(MarkCompletedRequest{
		UserID:   "user-1",
		LessonID: lesson.ID,
		Score:    &score,
	})
	if err != nil {
		t.Fatalf("MarkLessonCompleted() error = %v", err)
	}
	if !entry.Completed {
		t.Error("entry should be completed")
	}
	if entry.Score == nil || *entry.Score != 85 {
		t.Errorf("score = %v, want 85", entry.Score)
	}
	if entry.ModuleID == nil || *entry.ModuleID != lesson.ModuleID {
		t.Errorf("module linkage = %v, want %d", entry.ModuleID, lesson.ModuleID)
	}
}

func TestMarkLessonCompleted_Validation(t *testing.T) {
	svc, db := newTestProgressService(t)
	lesson, other := seedLessons(t, db)

	t.Run("unknown lesson", func(t *testing.T) {
		_, err := svc.MarkLessonCompleted(MarkCompletedRequest{UserID: "u", LessonID: 9999})
		if !errors.Is(err, util.ErrLessonNotFound) {
			t.Errorf("error = %v, want ErrLessonNotFound", err)
		}
	})

	t.Run("score out of range", func(t *testing.T) {
		for _, bad := range []int{-1, 101} {
			score := bad
			_, err := svc.MarkLessonCompleted(MarkCompletedRequest{UserID: "u", LessonID: lesson.ID, Score: &score})
			if !errors.Is(err, util.ErrScoreOutOfRange) {
				t.Errorf("score %d: error = %v, want ErrScoreOutOfRange", bad, err)
			}
		}
	})

	t.Run("activity from another lesson", func(t *testing.T) {
		activity := &model.Activity{LessonID: other.ID, Type: model.ContentActivity, Title: "Read"}
		if err := db.Create(activity).Error; err != nil {
			t.Fatalf("create activity: %v", err)
		}
		_, err := svc.MarkLessonCompleted(MarkCompletedRequest{
			UserID:     "u",
			LessonID:   lesson.ID,
			ActivityID: &activity.ID,
		})
		if !errors.Is(err, util.ErrActivityNotFound) {
			t.Errorf("error = %v, want ErrActivityNotFound", err)
		}
	})
}

func TestProgressHistoryIsAppendOnly(t *testing.T) {
	svc, db := newTestProgressService(t)
	lesson, _ := seedLessons(t, db)

	for i := 0; i < 3; i++ {
		if _, err := svc.MarkLessonCompleted(MarkCompletedRequest{UserID: "user-1", LessonID: lesson.ID}); err != nil {
			t.Fatalf("MarkLessonCompleted() #%d error = %v", i, err)
		}
	}

	entries, err := svc.ListForLesson("user-1", lesson.ID)
	if err != nil {
		t.Fatalf("ListForLesson() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}

	all, err := svc.GetUserProgress("user-1")
	if err != nil {
		t.Fatalf("GetUserProgress() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all entries = %d, want 3", len(all))
	}
}
