package model

// Lesson is ordered within its module via OrderIndex.
type Lesson struct {
	BaseModel
	ModuleID   uint       `gorm:"index;not null;uniqueIndex:uq_lesson_module_slug" json:"moduleId"`
	Slug       string     `gorm:"size:150;not null;uniqueIndex:uq_lesson_module_slug" json:"slug"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	OrderIndex int        `gorm:"default:0;index:ix_lesson_module_order" json:"orderIndex"`
	Activities []Activity `gorm:"foreignKey:LessonID" json:"activities,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// LessonAttachment is a file uploaded by an admin and linked to a lesson.
type LessonAttachment struct {
	BaseModel
	LessonID    uint   `gorm:"index;not null" json:"lessonId"`
	FileName    string `gorm:"size:255;not null" json:"fileName"`
	URL         string `gorm:"size:512;not null" json:"url"`
	ContentType string `gorm:"size:100" json:"contentType"`
	Size        int64  `gorm:"default:0" json:"size"`
}

func (LessonAttachment) TableName() string {
	return "lesson_attachments"
}
