package repository

import (
	"skillmaster_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(activity *model.Activity) error {
	return r.DB.Create(activity).Error
}

func (r *ActivityRepository) FindByID(id uint) (*model.Activity, error) {
	var a model.Activity
	err := r.DB.First(&a, id).Error
	return &a, err
}

// FindQuizByID returns the activity only if it is a quiz.
func (r *ActivityRepository) FindQuizByID(id uint) (*model.Activity, error) {
	var a model.Activity
	err := r.DB.Where("id = ? AND type = ?", id, model.QuizActivity).First(&a).Error
	return &a, err
}

// FirstQuizForLesson returns the first quiz activity for a lesson in
// creation order, or gorm.ErrRecordNotFound.
func (r *ActivityRepository) FirstQuizForLesson(lessonID uint) (*model.Activity, error) {
	var a model.Activity
	err := r.DB.
		Where("lesson_id = ? AND type = ?", lessonID, model.QuizActivity).
		Order("order_index asc, id asc").
		First(&a).Error
	return &a, err
}

func (r *ActivityRepository) List(lessonID uint, activityType model.ActivityType, page, limit int) ([]model.Activity, int64, error) {
	var activities []model.Activity
	var total int64

	query := r.DB.Model(&model.Activity{})
	if lessonID > 0 {
		query = query.Where("lesson_id = ?", lessonID)
	}
	if activityType != "" {
		query = query.Where("type = ?", activityType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("lesson_id asc, order_index asc").Offset(offset).Limit(limit).Find(&activities).Error
	return activities, total, err
}

func (r *ActivityRepository) ListByLesson(lessonID uint) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.DB.Where("lesson_id = ?", lessonID).Order("order_index asc").Find(&activities).Error
	return activities, err
}

func (r *ActivityRepository) Update(activity *model.Activity) error {
	return r.DB.Save(activity).Error
}

func (r *ActivityRepository) SoftDelete(id uint) error {
	return r.DB.Delete(&model.Activity{}, id).Error
}
