package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	ChapterID   uint      `gorm:"index;not null" json:"chapterId"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"type:date" json:"date"`
	Duration    int       `gorm:"default:30" json:"duration"` // 时长（分钟），仅存储，不做限时强制
}

func (Quiz) TableName() string {
	return "quizzes"
}
