package service

import (
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/repository"
	"skillmaster_backend/internal/util"
)

// ProgressService exposes a user's learning history and manual completion
// marks. Quiz attempts are recorded by QuizService; this service only reads
// them back and appends non-quiz completion events.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	ActivityRepo *repository.ActivityRepository
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	activityRepo *repository.ActivityRepository,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		ActivityRepo: activityRepo,
	}
}

type MarkCompletedRequest struct {
	UserID     string `json:"userId" binding:"required"`
	LessonID   uint   `json:"lessonId" binding:"required"`
	ActivityID *uint  `json:"activityId"`
	Score      *int   `json:"score"`
}

func (s *ProgressService) GetUserProgress(userID string) ([]model.Progress, error) {
	return s.ProgressRepo.ListByUser(userID)
}

func (s *ProgressService) ListForLesson(userID string, lessonID uint) ([]model.Progress, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return nil, util.ErrLessonNotFound
	}
	return s.ProgressRepo.ListByUserAndLesson(userID, lessonID)
}

// MarkLessonCompleted appends a completion event for a lesson or one of its
// activities. Each call adds a new row; history is never overwritten.
func (s *ProgressService) MarkLessonCompleted(req MarkCompletedRequest) (*model.Progress, error) {
	lesson, err := s.LessonRepo.FindByID(req.LessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}

	if req.ActivityID != nil {
		activity, err := s.ActivityRepo.FindByID(*req.ActivityID)
		if err != nil {
			return nil, util.ErrActivityNotFound
		}
		if activity.LessonID != lesson.ID {
			return nil, util.ErrActivityNotFound
		}
	}

	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		return nil, util.ErrScoreOutOfRange
	}

	entry := &model.Progress{
		UserID:     req.UserID,
		ModuleID:   &lesson.ModuleID,
		LessonID:   &lesson.ID,
		ActivityID: req.ActivityID,
		Completed:  true,
		Score:      req.Score,
	}
	if err := s.ProgressRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
