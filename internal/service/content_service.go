package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/repository"
	"skillmaster_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentService covers the module, lesson and activity layers, including
// lesson attachment uploads. It holds the redis client so quiz-activity
// mutations can drop the lesson's cached quiz.
type ContentService struct {
	ModuleRepo   *repository.ModuleRepository
	LessonRepo   *repository.LessonRepository
	ActivityRepo *repository.ActivityRepository
	Storage      *StorageService
	Redis        *redis.Client
}

func NewContentService(
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	activityRepo *repository.ActivityRepository,
	storage *StorageService,
	rdb *redis.Client,
) *ContentService {
	return &ContentService{
		ModuleRepo:   moduleRepo,
		LessonRepo:   lessonRepo,
		ActivityRepo: activityRepo,
		Storage:      storage,
		Redis:        rdb,
	}
}

type ModuleRequest struct {
	SubjectID   uint   `json:"subjectId" binding:"required"`
	SkillID     *uint  `json:"skillId"`
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

type LessonRequest struct {
	ModuleID   uint   `json:"moduleId" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
}

type ActivityRequest struct {
	LessonID   uint                 `json:"lessonId" binding:"required"`
	Type       string               `json:"type" binding:"required"`
	Title      string               `json:"title" binding:"required"`
	Content    *string              `json:"content"`
	OrderIndex int                  `json:"orderIndex"`
	Questions  []model.QuizQuestion `json:"quizQuestions"`
	PassScore  *int                 `json:"quizPassScore"`
}

func (s *ContentService) CreateModule(req ModuleRequest) (*model.Module, error) {
	if _, err := s.ModuleRepo.FindBySubjectAndSlug(req.SubjectID, req.Slug); err == nil {
		return nil, util.ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	module := &model.Module{
		SubjectID:   req.SubjectID,
		SkillID:     req.SkillID,
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ContentService) GetModule(id uint) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}

func (s *ContentService) ListModules(subjectID uint, search string, page, limit int) ([]model.Module, int64, error) {
	return s.ModuleRepo.List(subjectID, search, page, limit)
}

func (s *ContentService) UpdateModule(id uint, req ModuleRequest) (*model.Module, error) {
	module, err := s.GetModule(id)
	if err != nil {
		return nil, err
	}

	module.Title = req.Title
	module.Description = req.Description
	module.OrderIndex = req.OrderIndex
	module.SkillID = req.SkillID
	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ContentService) DeleteModule(id uint) error {
	if _, err := s.GetModule(id); err != nil {
		return err
	}
	return s.ModuleRepo.SoftDelete(id)
}

func (s *ContentService) ListModuleLessons(id uint) ([]model.Lesson, error) {
	if _, err := s.GetModule(id); err != nil {
		return nil, err
	}
	return s.ModuleRepo.ListLessons(id)
}

func (s *ContentService) CreateLesson(req LessonRequest) (*model.Lesson, error) {
	if _, err := s.GetModule(req.ModuleID); err != nil {
		return nil, err
	}

	if _, err := s.LessonRepo.FindByModuleAndSlug(req.ModuleID, req.Slug); err == nil {
		return nil, util.ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lesson := &model.Lesson{
		ModuleID:   req.ModuleID,
		Slug:       req.Slug,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) ListLessons(moduleID uint, search string, page, limit int) ([]model.Lesson, int64, error) {
	return s.LessonRepo.List(moduleID, search, page, limit)
}

func (s *ContentService) UpdateLesson(id uint, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.OrderIndex = req.OrderIndex
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) DeleteLesson(id uint) error {
	if _, err := s.GetLesson(id); err != nil {
		return err
	}
	return s.LessonRepo.SoftDelete(id)
}

func (s *ContentService) ListLessonActivities(id uint) ([]model.Activity, error) {
	if _, err := s.GetLesson(id); err != nil {
		return nil, err
	}
	return s.ActivityRepo.ListByLesson(id)
}

func (s *ContentService) CreateActivity(req ActivityRequest) (*model.Activity, error) {
	if _, err := s.GetLesson(req.LessonID); err != nil {
		return nil, err
	}

	activityType := model.ActivityType(req.Type)
	if activityType != model.ContentActivity && activityType != model.QuizActivity {
		return nil, errors.New("type must be content or quiz")
	}

	activity := &model.Activity{
		LessonID:   req.LessonID,
		Type:       activityType,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
	}

	if activityType == model.QuizActivity {
		if err := validateQuizQuestions(req.Questions); err != nil {
			return nil, err
		}
		activity.Questions = datatypes.NewJSONType(req.Questions)
		passScore := defaultPassScore
		if req.PassScore != nil {
			if *req.PassScore < 0 || *req.PassScore > 100 {
				return nil, util.ErrScoreOutOfRange
			}
			passScore = *req.PassScore
		}
		activity.PassScore = &passScore
	}

	if err := s.ActivityRepo.Create(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ContentService) GetActivity(id uint) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrActivityNotFound
		}
		return nil, err
	}
	return activity, nil
}

func (s *ContentService) ListActivities(lessonID uint, activityType string, page, limit int) ([]model.Activity, int64, error) {
	return s.ActivityRepo.List(lessonID, model.ActivityType(activityType), page, limit)
}

func (s *ContentService) UpdateActivity(ctx context.Context, id uint, req ActivityRequest) (*model.Activity, error) {
	activity, err := s.GetActivity(id)
	if err != nil {
		return nil, err
	}

	activity.Title = req.Title
	activity.Content = req.Content
	activity.OrderIndex = req.OrderIndex

	if activity.Type == model.QuizActivity && req.Questions != nil {
		if err := validateQuizQuestions(req.Questions); err != nil {
			return nil, err
		}
		activity.Questions = datatypes.NewJSONType(req.Questions)
	}
	if req.PassScore != nil {
		if *req.PassScore < 0 || *req.PassScore > 100 {
			return nil, util.ErrScoreOutOfRange
		}
		activity.PassScore = req.PassScore
	}

	if err := s.ActivityRepo.Update(activity); err != nil {
		return nil, err
	}
	if activity.Type == model.QuizActivity {
		invalidateLessonQuizCache(ctx, s.Redis, activity.LessonID)
	}
	return activity, nil
}

func (s *ContentService) DeleteActivity(ctx context.Context, id uint) error {
	activity, err := s.GetActivity(id)
	if err != nil {
		return err
	}
	if err := s.ActivityRepo.SoftDelete(id); err != nil {
		return err
	}
	if activity.Type == model.QuizActivity {
		invalidateLessonQuizCache(ctx, s.Redis, activity.LessonID)
	}
	return nil
}

// validateQuizQuestions enforces the quiz invariant for admin-authored
// quizzes: exactly 3 questions, 4 distinct options each, answerIndex in range.
func validateQuizQuestions(questions []model.QuizQuestion) error {
	if len(questions) != quizQuestionCount {
		return fmt.Errorf("quiz must contain exactly %d questions", quizQuestionCount)
	}
	for i, q := range questions {
		if q.Question == "" {
			return fmt.Errorf("question %d has empty text", i)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d must have exactly 4 options", i)
		}
		seen := make(map[string]bool, 4)
		for _, opt := range q.Options {
			if opt == "" {
				return fmt.Errorf("question %d has an empty option", i)
			}
			if seen[opt] {
				return fmt.Errorf("question %d has duplicate options", i)
			}
			seen[opt] = true
		}
		if q.AnswerIndex < 0 || q.AnswerIndex > 3 {
			return fmt.Errorf("question %d answerIndex out of range", i)
		}
	}
	return nil
}

// UploadAttachment stores the file via the configured provider and records
// an attachment row for the lesson.
func (s *ContentService) UploadAttachment(ctx context.Context, lessonID uint, file *multipart.FileHeader) (*model.LessonAttachment, error) {
	lesson, err := s.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	allowedTypes := []string{"image/", "application/pdf", "text/plain", "application/octet-stream"}
	contentType, err := util.ValidateMimeType(src, allowedTypes)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("lessons/%d/%s%s", lesson.ID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, objectName, src, file.Size, contentType)
	if err != nil {
		return nil, err
	}

	attachment := &model.LessonAttachment{
		LessonID:    lesson.ID,
		FileName:    file.Filename,
		URL:         url,
		ContentType: contentType,
		Size:        file.Size,
	}
	if err := s.LessonRepo.CreateAttachment(attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *ContentService) ListAttachments(lessonID uint) ([]model.LessonAttachment, error) {
	if _, err := s.GetLesson(lessonID); err != nil {
		return nil, err
	}
	return s.LessonRepo.ListAttachments(lessonID)
}
