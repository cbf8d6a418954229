package service

import (
	"context"
	"errors"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/repository"
	"skillmaster_backend/internal/util"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func newCachedServices(t *testing.T) (*QuizService, *ContentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	rdb := newTestRedis(t)
	lessonRepo := repository.NewLessonRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	quiz := NewQuizService(
		lessonRepo,
		activityRepo,
		repository.NewProgressRepository(db),
		&fakeGenerator{questions: fakeQuestions()},
		rdb,
		db,
	)
	content := NewContentService(
		repository.NewModuleRepository(db),
		lessonRepo,
		activityRepo,
		nil,
		rdb,
	)
	return quiz, content, db
}

func TestGetQuizForLesson_ServesFromCache(t *testing.T) {
	quiz, _, db := newCachedServices(t)
	lesson, _ := seedLessons(t, db)

	created, err := quiz.Generate(context.Background(), GenerateQuizRequest{LessonID: lesson.ID})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		fetched, err := quiz.GetQuizForLesson(context.Background(), lesson.ID)
		if err != nil {
			t.Fatalf("GetQuizForLesson() #%d error = %v", i, err)
		}
		if fetched.ID != created.ID {
			t.Errorf("fetched id = %d, want %d", fetched.ID, created.ID)
		}
	}
}

func TestDeleteActivity_DropsCachedQuiz(t *testing.T) {
	quiz, content, db := newCachedServices(t)
	lesson, _ := seedLessons(t, db)

	activity, err := quiz.Generate(context.Background(), GenerateQuizRequest{LessonID: lesson.ID})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// warm the cache
	if _, err := quiz.GetQuizForLesson(context.Background(), lesson.ID); err != nil {
		t.Fatalf("GetQuizForLesson() error = %v", err)
	}

	if err := content.DeleteActivity(context.Background(), activity.ID); err != nil {
		t.Fatalf("DeleteActivity() error = %v", err)
	}

	if got, err := quiz.GetQuizForLesson(context.Background(), lesson.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("deleted quiz still served: got = %v, error = %v, want ErrQuizNotFound", got, err)
	}
}

func TestUpdateActivity_DropsCachedQuiz(t *testing.T) {
	quiz, content, db := newCachedServices(t)
	lesson, _ := seedLessons(t, db)

	activity, err := quiz.Generate(context.Background(), GenerateQuizRequest{LessonID: lesson.ID})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := quiz.GetQuizForLesson(context.Background(), lesson.ID); err != nil {
		t.Fatalf("GetQuizForLesson() error = %v", err)
	}

	if _, err := content.UpdateActivity(context.Background(), activity.ID, ActivityRequest{
		LessonID: lesson.ID,
		Type:     string(model.QuizActivity),
		Title:    "Revised Quiz",
	}); err != nil {
		t.Fatalf("UpdateActivity() error = %v", err)
	}

	fetched, err := quiz.GetQuizForLesson(context.Background(), lesson.ID)
	if err != nil {
		t.Fatalf("GetQuizForLesson() error = %v", err)
	}
	if fetched.Title != "Revised Quiz" {
		t.Errorf("title = %q, want the edited title, not the cached one", fetched.Title)
	}
}
