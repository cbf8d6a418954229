package model

// Module is an ordered unit under a subject, optionally attached to a skill.
type Module struct {
	BaseModel
	SubjectID   uint     `gorm:"index;not null;uniqueIndex:uq_module_subject_slug" json:"subjectId"`
	SkillID     *uint    `gorm:"index" json:"skillId,omitempty"`
	Slug        string   `gorm:"size:150;not null;uniqueIndex:uq_module_subject_slug" json:"slug"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	OrderIndex  int      `gorm:"default:0;index:ix_module_subject_order" json:"orderIndex"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}
