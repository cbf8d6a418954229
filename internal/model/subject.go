package model

// Subject is a top-level topic grouping skills and modules.
type Subject struct {
	BaseModel
	Slug        string   `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Skills      []Skill  `gorm:"foreignKey:SubjectID" json:"skills,omitempty"`
	Modules     []Module `gorm:"foreignKey:SubjectID" json:"modules,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}
