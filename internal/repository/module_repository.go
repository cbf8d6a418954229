package repository

import (
	"skillmaster_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var m model.Module
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *ModuleRepository) FindBySubjectAndSlug(subjectID uint, slug string) (*model.Module, error) {
	var m model.Module
	err := r.DB.Where("subject_id = ? AND slug = ?", subjectID, slug).First(&m).Error
	return &m, err
}

func (r *ModuleRepository) List(subjectID uint, search string, page, limit int) ([]model.Module, int64, error) {
	var modules []model.Module
	var total int64

	query := r.DB.Model(&model.Module{})
	if subjectID > 0 {
		query = query.Where("subject_id = ?", subjectID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("slug LIKE ? OR title LIKE ?", pattern, pattern)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("subject_id asc, order_index asc").Offset(offset).Limit(limit).Find(&modules).Error
	return modules, total, err
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) SoftDelete(id uint) error {
	return r.DB.Delete(&model.Module{}, id).Error
}

func (r *ModuleRepository) ListLessons(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).Order("order_index asc").Find(&lessons).Error
	return lessons, err
}
