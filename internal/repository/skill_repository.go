package repository

import (
	"skillmaster_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) Create(skill *model.Skill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) FindBySlug(slug string) (*model.Skill, error) {
	var s model.Skill
	err := r.DB.Where("slug = ?", slug).First(&s).Error
	return &s, err
}

func (r *SkillRepository) List(subjectID uint, level model.SkillLevel) ([]model.Skill, error) {
	var skills []model.Skill
	query := r.DB.Model(&model.Skill{})
	if subjectID > 0 {
		query = query.Where("subject_id = ?", subjectID)
	}
	if level != "" {
		query = query.Where("level = ?", level)
	}
	err := query.Order("created_at asc").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) Update(skill *model.Skill) error {
	return r.DB.Save(skill).Error
}

func (r *SkillRepository) SoftDelete(id uint) error {
	return r.DB.Delete(&model.Skill{}, id).Error
}

func (r *SkillRepository) ListModules(skillID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("skill_id = ?", skillID).Order("order_index asc").Find(&modules).Error
	return modules, err
}
