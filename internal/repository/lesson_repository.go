package repository

import (
	"skillmaster_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.First(&l, id).Error
	return &l, err
}

func (r *LessonRepository) FindByModuleAndSlug(moduleID uint, slug string) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.Where("module_id = ? AND slug = ?", moduleID, slug).First(&l).Error
	return &l, err
}

func (r *LessonRepository) List(moduleID uint, search string, page, limit int) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	var total int64

	query := r.DB.Model(&model.Lesson{})
	if moduleID > 0 {
		query = query.Where("module_id = ?", moduleID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("slug LIKE ? OR title LIKE ?", pattern, pattern)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("module_id asc, order_index asc").Offset(offset).Limit(limit).Find(&lessons).Error
	return lessons, total, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) SoftDelete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

// NextInModule returns the lesson that follows the given one in module order,
// or gorm.ErrRecordNotFound at the end of the module. Pass the enclosing
// transaction as tx to read from its snapshot; nil falls back to the base DB.
func (r *LessonRepository) NextInModule(tx *gorm.DB, lesson *model.Lesson) (*model.Lesson, error) {
	if tx == nil {
		tx = r.DB
	}
	var next model.Lesson
	err := tx.
		Where("module_id = ? AND order_index > ?", lesson.ModuleID, lesson.OrderIndex).
		Order("order_index asc").
		First(&next).Error
	return &next, err
}

func (r *LessonRepository) CreateAttachment(attachment *model.LessonAttachment) error {
	return r.DB.Create(attachment).Error
}

func (r *LessonRepository) ListAttachments(lessonID uint) ([]model.LessonAttachment, error) {
	var attachments []model.LessonAttachment
	err := r.DB.Where("lesson_id = ?", lessonID).Order("created_at asc").Find(&attachments).Error
	return attachments, err
}
