package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/repository"
	"skillmaster_backend/internal/util"
	"skillmaster_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPassScore  = 70
	quizCacheKeyScope = "quiz:lesson:"
	quizCacheTTL      = 10 * time.Minute
)

// QuizService owns quiz generation, lookup and the grading/unlock flow.
type QuizService struct {
	LessonRepo   *repository.LessonRepository
	ActivityRepo *repository.ActivityRepository
	ProgressRepo *repository.ProgressRepository
	Generator    QuizGenerator
	Redis        *redis.Client
	DB           *gorm.DB
}

func NewQuizService(
	lessonRepo *repository.LessonRepository,
	activityRepo *repository.ActivityRepository,
	progressRepo *repository.ProgressRepository,
	generator QuizGenerator,
	rdb *redis.Client,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		LessonRepo:   lessonRepo,
		ActivityRepo: activityRepo,
		ProgressRepo: progressRepo,
		Generator:    generator,
		Redis:        rdb,
		DB:           db,
	}
}

type GenerateQuizRequest struct {
	LessonID   uint   `json:"lesson_id" binding:"required"`
	PassScore  *int   `json:"pass_score"`
	Difficulty string `json:"difficulty"`
}

type SubmitQuizRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	ActivityID uint   `json:"activity_id" binding:"required"`
	Answers    []int  `json:"answers" binding:"required"`
}

type SubmitQuizResult struct {
	ActivityID           uint  `json:"activityId"`
	LessonID             uint  `json:"lessonId"`
	TotalQuestions       int   `json:"totalQuestions"`
	Correct              int   `json:"correct"`
	Score                int   `json:"score"`
	Passed               bool  `json:"passed"`
	UnlockedNextLessonID *uint `json:"unlockedNextLessonId,omitempty"`
}

// Generate builds a quiz for the lesson via the external model and persists
// it as a new quiz activity. Every call creates an independent activity;
// callers wanting reuse should look up an existing quiz first.
func (s *QuizService) Generate(ctx context.Context, req GenerateQuizRequest) (*model.Activity, error) {
	lesson, err := s.LessonRepo.FindByID(req.LessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	passScore := defaultPassScore
	if req.PassScore != nil {
		if *req.PassScore < 0 || *req.PassScore > 100 {
			return nil, util.ErrScoreOutOfRange
		}
		passScore = *req.PassScore
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = string(model.Beginner)
	}

	questions, err := s.Generator.GenerateQuiz(ctx, lesson, difficulty)
	if err != nil {
		monitoring.QuizGenerationCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	activity := &model.Activity{
		LessonID:   lesson.ID,
		Type:       model.QuizActivity,
		Title:      lesson.Title + " - Quiz",
		OrderIndex: 999, // quizzes sort after regular content
		Questions:  datatypes.NewJSONType(questions),
		PassScore:  &passScore,
	}
	if err := s.ActivityRepo.Create(activity); err != nil {
		return nil, err
	}

	monitoring.QuizGenerationCounter.WithLabelValues("ok").Inc()
	invalidateLessonQuizCache(ctx, s.Redis, lesson.ID)
	return activity, nil
}

// GetQuizForLesson returns the first quiz activity of the lesson, serving
// from the redis cache when possible.
func (s *QuizService) GetQuizForLesson(ctx context.Context, lessonID uint) (*model.Activity, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, quizCacheKey(lessonID)).Result(); err == nil {
			var activity model.Activity
			if err := json.Unmarshal([]byte(cached), &activity); err == nil {
				return &activity, nil
			}
		}
	}

	activity, err := s.ActivityRepo.FirstQuizForLesson(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(activity); err == nil {
			s.Redis.Set(ctx, quizCacheKey(lessonID), encoded, quizCacheTTL)
		}
	}
	return activity, nil
}

// Submit grades the answers against the stored quiz, records the attempt and
// unlocks the next lesson in module order when the pass threshold is met.
// The attempt row and any unlock row are written in one transaction.
func (s *QuizService) Submit(ctx context.Context, req SubmitQuizRequest) (*SubmitQuizResult, error) {
	activity, err := s.ActivityRepo.FindQuizByID(req.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrActivityNotFound
		}
		return nil, err
	}

	questions := activity.QuizQuestions()
	if len(req.Answers) != len(questions) {
		return nil, util.ErrAnswersLengthMismatch
	}

	correct := 0
	for i, answer := range req.Answers {
		// out-of-range indices are wrong answers, not errors
		if answer == questions[i].AnswerIndex {
			correct++
		}
	}

	total := len(questions)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	passScore := defaultPassScore
	if activity.PassScore != nil {
		passScore = *activity.PassScore
	}
	passed := score >= passScore

	result := &SubmitQuizResult{
		ActivityID:     activity.ID,
		LessonID:       activity.LessonID,
		TotalQuestions: total,
		Correct:        correct,
		Score:          score,
		Passed:         passed,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		lessonID := activity.LessonID
		activityID := activity.ID
		attempt := &model.Progress{
			UserID:     req.UserID,
			LessonID:   &lessonID,
			ActivityID: &activityID,
			Completed:  true,
			Score:      &score,
		}
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		if !passed {
			return nil
		}

		// lesson reads go through tx so the whole submit sees one snapshot
		var lesson model.Lesson
		if err := tx.First(&lesson, activity.LessonID).Error; err != nil {
			return err
		}

		next, err := s.LessonRepo.NextInModule(tx, &lesson)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // end of module, nothing to unlock
			}
			return err
		}

		if _, err := s.ProgressRepo.EnsureUnlocked(tx, req.UserID, next.ID); err != nil {
			return err
		}
		result.UnlockedNextLessonID = &next.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.QuizSubmissionCounter.WithLabelValues(fmt.Sprintf("%t", passed)).Inc()
	return result, nil
}

func quizCacheKey(lessonID uint) string {
	return fmt.Sprintf("%s%d", quizCacheKeyScope, lessonID)
}

// invalidateLessonQuizCache drops the cached quiz for a lesson. Every quiz
// mutation path (generation, admin edit, admin delete) must call this so the
// lookup never serves a stale or soft-deleted activity.
func invalidateLessonQuizCache(ctx context.Context, rdb *redis.Client, lessonID uint) {
	if rdb != nil {
		rdb.Del(ctx, quizCacheKey(lessonID))
	}
}
