package repository

import (
	"skillmaster_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var s model.Subject
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SubjectRepository) FindBySlug(slug string) (*model.Subject, error) {
	var s model.Subject
	err := r.DB.Where("slug = ?", slug).First(&s).Error
	return &s, err
}

func (r *SubjectRepository) List(search string, page, limit int) ([]model.Subject, int64, error) {
	var subjects []model.Subject
	var total int64

	query := r.DB.Model(&model.Subject{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("slug LIKE ? OR title LIKE ?", pattern, pattern)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&subjects).Error
	return subjects, total, err
}

func (r *SubjectRepository) Update(subject *model.Subject) error {
	return r.DB.Save(subject).Error
}

func (r *SubjectRepository) SoftDelete(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}

func (r *SubjectRepository) ListModules(subjectID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("subject_id = ?", subjectID).Order("order_index asc").Find(&modules).Error
	return modules, err
}
