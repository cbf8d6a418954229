package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/repository"
	"skillmaster_backend/internal/service"
	"skillmaster_backend/internal/util"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubGenerator struct {
	questions []model.QuizQuestion
	err       error
}

func (s *stubGenerator) GenerateQuiz(ctx context.Context, lesson *model.Lesson, difficulty string) ([]model.QuizQuestion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.questions, nil
}

func setupQuizRouter(t *testing.T, generator service.QuizGenerator) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Subject{}, &model.Module{}, &model.Lesson{}, &model.Activity{}, &model.Progress{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := service.NewQuizService(
		repository.NewLessonRepository(db),
		repository.NewActivityRepository(db),
		repository.NewProgressRepository(db),
		generator,
		nil,
		db,
	)
	ctrl := NewQuizController(svc)

	router := gin.New()
	router.POST("/api/ai/quiz/generate", ctrl.GenerateQuiz)
	router.GET("/api/ai/quiz/lesson/:lessonId", ctrl.GetQuizForLesson)
	router.POST("/api/ai/quiz/submit", ctrl.SubmitQuiz)
	return router, db
}

func seedQuizLesson(t *testing.T, db *gorm.DB) *model.Lesson {
	t.Helper()
	subject := &model.Subject{Slug: "digital", Title: "Digital"}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("create subject: %v", err)
	}
	module := &model.Module{SubjectID: subject.ID, Slug: "m1", Title: "M1"}
	if err := db.Create(module).Error; err != nil {
		t.Fatalf("create module: %v", err)
	}
	lesson := &model.Lesson{ModuleID: module.ID, Slug: "l1", Title: "L1", Content: "c"}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return lesson
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateQuizEndpoint_StatusMapping(t *testing.T) {
	questions := []model.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
		{Question: "q2", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 1},
		{Question: "q3", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 2},
	}

	t.Run("ok", func(t *testing.T) {
		router, db := setupQuizRouter(t, &stubGenerator{questions: questions})
		lesson := seedQuizLesson(t, db)

		w := postJSON(t, router, "/api/ai/quiz/generate", gin.H{"lesson_id": lesson.ID})
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown lesson", func(t *testing.T) {
		router, _ := setupQuizRouter(t, &stubGenerator{questions: questions})

		w := postJSON(t, router, "/api/ai/quiz/generate", gin.H{"lesson_id": 9999})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("missing lesson_id", func(t *testing.T) {
		router, _ := setupQuizRouter(t, &stubGenerator{questions: questions})

		w := postJSON(t, router, "/api/ai/quiz/generate", gin.H{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("service not configured", func(t *testing.T) {
		router, db := setupQuizRouter(t, &stubGenerator{err: util.ErrQuizServiceNotConfigured})
		lesson := seedQuizLesson(t, db)

		w := postJSON(t, router, "/api/ai/quiz/generate", gin.H{"lesson_id": lesson.ID})
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})

	t.Run("invalid model payload", func(t *testing.T) {
		router, db := setupQuizRouter(t, &stubGenerator{err: util.ErrInvalidQuizPayload})
		lesson := seedQuizLesson(t, db)

		w := postJSON(t, router, "/api/ai/quiz/generate", gin.H{"lesson_id": lesson.ID})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("pass score out of range", func(t *testing.T) {
		router, db := setupQuizRouter(t, &stubGenerator{questions: questions})
		lesson := seedQuizLesson(t, db)

		w := postJSON(t, router, "/api/ai/quiz/generate", gin.H{"lesson_id": lesson.ID, "pass_score": 150})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestQuizLookupEndpoint(t *testing.T) {
	questions := []model.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
		{Question: "q2", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 1},
		{Question: "q3", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 2},
	}
	router, db := setupQuizRouter(t, &stubGenerator{questions: questions})
	lesson := seedQuizLesson(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/ai/quiz/lesson/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before generation", w.Code)
	}

	if w := postJSON(t, router, "/api/ai/quiz/generate", gin.H{"lesson_id": lesson.ID}); w.Code != http.StatusOK {
		t.Fatalf("generate status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/ai/quiz/lesson/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 after generation", w.Code)
	}
}

func TestSubmitQuizEndpoint_StatusMapping(t *testing.T) {
	questions := []model.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
		{Question: "q2", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 1},
		{Question: "q3", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 2},
	}
	router, db := setupQuizRouter(t, &stubGenerator{questions: questions})
	lesson := seedQuizLesson(t, db)

	if w := postJSON(t, router, "/api/ai/quiz/generate", gin.H{"lesson_id": lesson.ID}); w.Code != http.StatusOK {
		t.Fatalf("generate status = %d", w.Code)
	}

	var activity model.Activity
	if err := db.Where("type = ?", model.QuizActivity).First(&activity).Error; err != nil {
		t.Fatalf("find quiz: %v", err)
	}

	t.Run("ok", func(t *testing.T) {
		w := postJSON(t, router, "/api/ai/quiz/submit", gin.H{
			"user_id":     "user-1",
			"activity_id": activity.ID,
			"answers":     []int{0, 1, 2},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var resp struct {
			Data service.SubmitQuizResult `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Data.Score != 100 || !resp.Data.Passed {
			t.Errorf("score = %d passed = %t, want 100/true", resp.Data.Score, resp.Data.Passed)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		w := postJSON(t, router, "/api/ai/quiz/submit", gin.H{
			"user_id":     "user-1",
			"activity_id": activity.ID,
			"answers":     []int{0},
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("non-integer answers", func(t *testing.T) {
		body := []byte(`{"user_id": "user-1", "activity_id": ` + strconv.Itoa(int(activity.ID)) + `, "answers": [0, "x", 1]}`)
		req := httptest.NewRequest(http.MethodPost, "/api/ai/quiz/submit", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown activity", func(t *testing.T) {
		w := postJSON(t, router, "/api/ai/quiz/submit", gin.H{
			"user_id":     "user-1",
			"activity_id": 9999,
			"answers":     []int{0, 1, 2},
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}
