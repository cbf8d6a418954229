package model

import "gorm.io/datatypes"

type ActivityType string

const (
	ContentActivity ActivityType = "content"
	QuizActivity    ActivityType = "quiz"
)

// QuizQuestion is a single multiple-choice question stored in the
// quiz_questions JSON column of a quiz activity.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

// Activity is a unit of lesson content, either informational or a quiz.
// Quiz activities carry exactly three questions and a pass threshold.
type Activity struct {
	BaseModel
	LessonID   uint                               `gorm:"index;not null;index:ix_activity_lesson_order" json:"lessonId"`
	Type       ActivityType                       `gorm:"type:varchar(20);not null;default:'content'" json:"type"`
	Title      string                             `gorm:"size:255;not null" json:"title"`
	Content    *string                            `gorm:"type:text" json:"content,omitempty"`
	OrderIndex int                                `gorm:"default:0;index:ix_activity_lesson_order" json:"orderIndex"`
	Questions  datatypes.JSONType[[]QuizQuestion] `gorm:"column:quiz_questions;type:json" json:"quizQuestions"`
	PassScore  *int                               `gorm:"column:quiz_pass_score" json:"quizPassScore,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}

// QuizQuestions returns the decoded question list for quiz activities.
func (a *Activity) QuizQuestions() []QuizQuestion {
	return a.Questions.Data()
}
