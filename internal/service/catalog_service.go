package service

import (
	"errors"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/repository"
	"skillmaster_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CatalogService covers the subject and skill layers of the hierarchy.
type CatalogService struct {
	SubjectRepo *repository.SubjectRepository
	SkillRepo   *repository.SkillRepository
}

func NewCatalogService(subjectRepo *repository.SubjectRepository, skillRepo *repository.SkillRepository) *CatalogService {
	return &CatalogService{SubjectRepo: subjectRepo, SkillRepo: skillRepo}
}

type SubjectRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type SkillRequest struct {
	SubjectID   uint     `json:"subjectId" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Level       string   `json:"level" binding:"required"`
	Tags        []string `json:"tags"`
}

type SkillUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Level       *string  `json:"level"`
	Tags        []string `json:"tags"`
}

func (s *CatalogService) CreateSubject(req SubjectRequest) (*model.Subject, error) {
	if _, err := s.SubjectRepo.FindBySlug(req.Slug); err == nil {
		return nil, util.ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := &model.Subject{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *CatalogService) GetSubject(id uint) (*model.Subject, error) {
	subject, err := s.SubjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *CatalogService) ListSubjects(search string, page, limit int) ([]model.Subject, int64, error) {
	return s.SubjectRepo.List(search, page, limit)
}

func (s *CatalogService) UpdateSubject(id uint, req SubjectRequest) (*model.Subject, error) {
	subject, err := s.GetSubject(id)
	if err != nil {
		return nil, err
	}

	subject.Title = req.Title
	subject.Description = req.Description
	if err := s.SubjectRepo.Update(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *CatalogService) DeleteSubject(id uint) error {
	if _, err := s.GetSubject(id); err != nil {
		return err
	}
	return s.SubjectRepo.SoftDelete(id)
}

func (s *CatalogService) ListSubjectModules(id uint) ([]model.Module, error) {
	if _, err := s.GetSubject(id); err != nil {
		return nil, err
	}
	return s.SubjectRepo.ListModules(id)
}

func (s *CatalogService) CreateSkill(req SkillRequest) (*model.Skill, error) {
	level := model.SkillLevel(req.Level)
	if !model.ValidSkillLevel(level) {
		return nil, errors.New("level must be Beginner, Intermediate or Advanced")
	}

	if _, err := s.SubjectRepo.FindByID(req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	if _, err := s.SkillRepo.FindBySlug(req.Slug); err == nil {
		return nil, util.ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	skill := &model.Skill{
		SubjectID:   req.SubjectID,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Level:       level,
		Tags:        datatypes.NewJSONSlice(req.Tags),
	}
	if err := s.SkillRepo.Create(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *CatalogService) GetSkill(slug string) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}
	return skill, nil
}

// ListSkills filters by subject slug and level; an unknown subject slug
// yields an empty list rather than an error.
func (s *CatalogService) ListSkills(subjectSlug string, level string) ([]model.Skill, error) {
	var subjectID uint
	if subjectSlug != "" {
		subject, err := s.SubjectRepo.FindBySlug(subjectSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []model.Skill{}, nil
			}
			return nil, err
		}
		subjectID = subject.ID
	}
	return s.SkillRepo.List(subjectID, model.SkillLevel(level))
}

func (s *CatalogService) UpdateSkill(slug string, req SkillUpdateRequest) (*model.Skill, error) {
	skill, err := s.GetSkill(slug)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}
	if req.Level != nil {
		level := model.SkillLevel(*req.Level)
		if !model.ValidSkillLevel(level) {
			return nil, errors.New("level must be Beginner, Intermediate or Advanced")
		}
		skill.Level = level
	}
	if req.Tags != nil {
		skill.Tags = datatypes.NewJSONSlice(req.Tags)
	}

	if err := s.SkillRepo.Update(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *CatalogService) DeleteSkill(slug string) error {
	skill, err := s.GetSkill(slug)
	if err != nil {
		return err
	}
	return s.SkillRepo.SoftDelete(skill.ID)
}

func (s *CatalogService) ListSkillModules(slug string) ([]model.Module, error) {
	skill, err := s.GetSkill(slug)
	if err != nil {
		return nil, err
	}
	return s.SkillRepo.ListModules(skill.ID)
}
