package service

import (
	"fmt"
	"skillmaster_backend/internal/model"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedService populates the initial catalog: five topics, each with a skill
// per level and minimal starter content. All lookups are by slug, so re-runs
// create nothing.
type SeedService struct {
	DB *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{DB: db}
}

var seedTopics = []struct {
	Slug  string
	Title string
}{
	{"digital", "Digital"},
	{"communication", "Communication"},
	{"career", "Career"},
	{"leadership", "Leadership"},
	{"creativity", "Creativity"},
}

var seedLevels = []model.SkillLevel{model.Beginner, model.Intermediate, model.Advanced}

// Run seeds every topic and level combination. Safe to call repeatedly.
func (s *SeedService) Run() error {
	for _, topic := range seedTopics {
		subject, err := s.ensureSubject(topic.Slug, topic.Title)
		if err != nil {
			return fmt.Errorf("seed subject %s: %w", topic.Slug, err)
		}
		for _, level := range seedLevels {
			skill, err := s.ensureSkill(subject, level)
			if err != nil {
				return fmt.Errorf("seed skill %s/%s: %w", topic.Slug, level, err)
			}
			module, err := s.ensureModule(subject, skill)
			if err != nil {
				return fmt.Errorf("seed module for %s: %w", skill.Slug, err)
			}
			lesson, err := s.ensureLesson(module, skill)
			if err != nil {
				return fmt.Errorf("seed lesson for %s: %w", skill.Slug, err)
			}
			if err := s.ensureActivity(lesson); err != nil {
				return fmt.Errorf("seed activity for %s: %w", skill.Slug, err)
			}
		}
	}
	zap.L().Info("catalog seed complete",
		zap.Int("topics", len(seedTopics)),
		zap.Int("levels", len(seedLevels)))
	return nil
}

func (s *SeedService) ensureSubject(slug, title string) (*model.Subject, error) {
	var subject model.Subject
	err := s.DB.
		Where("slug = ?", slug).
		Attrs(model.Subject{
			Slug:        slug,
			Title:       title,
			Description: title + " topic",
		}).
		FirstOrCreate(&subject).Error
	return &subject, err
}

func (s *SeedService) ensureSkill(subject *model.Subject, level model.SkillLevel) (*model.Skill, error) {
	slug := fmt.Sprintf("%s-%s", subject.Slug, strings.ToLower(string(level)))
	name := fmt.Sprintf("%s %s", subject.Title, level)

	var skill model.Skill
	err := s.DB.
		Where("slug = ?", slug).
		Attrs(model.Skill{
			SubjectID:   subject.ID,
			Slug:        slug,
			Name:        name,
			Description: name + " path",
			Level:       level,
			Tags:        datatypes.NewJSONSlice([]string{subject.Slug, string(level)}),
		}).
		FirstOrCreate(&skill).Error
	return &skill, err
}

func (s *SeedService) ensureModule(subject *model.Subject, skill *model.Skill) (*model.Module, error) {
	slug := skill.Slug + "-module-1"

	var module model.Module
	err := s.DB.
		Where("subject_id = ? AND slug = ?", subject.ID, slug).
		Attrs(model.Module{
			SubjectID:   subject.ID,
			SkillID:     &skill.ID,
			Slug:        slug,
			Title:       "Getting Started",
			Description: "Kick-off module",
			OrderIndex:  0,
		}).
		FirstOrCreate(&module).Error
	return &module, err
}

func (s *SeedService) ensureLesson(module *model.Module, skill *model.Skill) (*model.Lesson, error) {
	slug := skill.Slug + "-lesson-1"

	var lesson model.Lesson
	err := s.DB.
		Where("module_id = ? AND slug = ?", module.ID, slug).
		Attrs(model.Lesson{
			ModuleID:   module.ID,
			Slug:       slug,
			Title:      "First Steps",
			Content:    "Welcome! This lesson introduces key concepts and a short activity.",
			OrderIndex: 0,
		}).
		FirstOrCreate(&lesson).Error
	return &lesson, err
}

func (s *SeedService) ensureActivity(lesson *model.Lesson) error {
	content := "Read the brief introduction and mark complete to proceed."

	var activity model.Activity
	return s.DB.
		Where("lesson_id = ? AND order_index = ? AND type = ?", lesson.ID, 0, model.ContentActivity).
		Attrs(model.Activity{
			LessonID:   lesson.ID,
			Type:       model.ContentActivity,
			Title:      "Read: Introduction",
			Content:    &content,
			OrderIndex: 0,
		}).
		FirstOrCreate(&activity).Error
}
