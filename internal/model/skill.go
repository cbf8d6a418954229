package model

import "gorm.io/datatypes"

type SkillLevel string

const (
	Beginner     SkillLevel = "Beginner"
	Intermediate SkillLevel = "Intermediate"
	Advanced     SkillLevel = "Advanced"
)

// ValidSkillLevel reports whether level is one of the known progression levels.
func ValidSkillLevel(level SkillLevel) bool {
	switch level {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Skill is a progression track under a subject; one skill per level per subject.
type Skill struct {
	BaseModel
	SubjectID   uint                        `gorm:"index;not null;uniqueIndex:uq_skill_subject_level" json:"subjectId"`
	Slug        string                      `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Level       SkillLevel                  `gorm:"type:varchar(20);not null;uniqueIndex:uq_skill_subject_level" json:"level"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:json" json:"tags"`
}

func (Skill) TableName() string {
	return "skills"
}
