package service

import (
	"skillmaster_backend/internal/model"
	"testing"
)

func TestSeedRun(t *testing.T) {
	db := newTestDB(t)
	svc := NewSeedService(db)

	if err := svc.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var subjects, skills, modules, lessons, activities int64
	db.Model(&model.Subject{}).Count(&subjects)
	db.Model(&model.Skill{}).Count(&skills)
	db.Model(&model.Module{}).Count(&modules)
	db.Model(&model.Lesson{}).Count(&lessons)
	db.Model(&model.Activity{}).Count(&activities)

	if subjects != 5 {
		t.Errorf("subjects = %d, want 5", subjects)
	}
	if skills != 15 {
		t.Errorf("skills = %d, want 15", skills)
	}
	if modules != 15 {
		t.Errorf("modules = %d, want 15", modules)
	}
	if lessons != 15 {
		t.Errorf("lessons = %d, want 15", lessons)
	}
	if activities != 15 {
		t.Errorf("activities = %d, want 15", activities)
	}

	var skill model.Skill
	if err := db.Where("slug = ?", "digital-beginner").First(&skill).Error; err != nil {
		t.Fatalf("expected digital-beginner skill: %v", err)
	}
	if skill.Level != model.Beginner {
		t.Errorf("level = %s, want Beginner", skill.Level)
	}

	var lesson model.Lesson
	if err := db.Where("slug = ?", "digital-beginner-lesson-1").First(&lesson).Error; err != nil {
		t.Fatalf("expected digital-beginner-lesson-1: %v", err)
	}
	if lesson.Title != "First Steps" {
		t.Errorf("lesson title = %q", lesson.Title)
	}
}

func TestSeedRun_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewSeedService(db)

	for i := 0; i < 3; i++ {
		if err := svc.Run(); err != nil {
			t.Fatalf("Run() #%d error = %v", i, err)
		}
	}

	var subjects, skills, modules, lessons, activities int64
	db.Model(&model.Subject{}).Count(&subjects)
	db.Model(&model.Skill{}).Count(&skills)
	db.Model(&model.Module{}).Count(&modules)
	db.Model(&model.Lesson{}).Count(&lessons)
	db.Model(&model.Activity{}).Count(&activities)

	if subjects != 5 || skills != 15 || modules != 15 || lessons != 15 || activities != 15 {
		t.Errorf("re-runs created rows: subjects=%d skills=%d modules=%d lessons=%d activities=%d",
			subjects, skills, modules, lessons, activities)
	}
}
