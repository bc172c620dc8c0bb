package model

import "time"

// Score 一名用户对一份测验的唯一一次完成记录，提交后不可变
// swagger:model Score
type Score struct {
	BaseModel
	QuizID         uint      `gorm:"not null;uniqueIndex:idx_scores_user_quiz" json:"quizId"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_scores_user_quiz" json:"userId"`
	Timestamp      time.Time `json:"timestamp"`
	TotalScore     float64   `gorm:"default:0" json:"totalScore"` // 百分制，保留两位小数
	CorrectAnswers int       `gorm:"default:0" json:"correctAnswers"`
	TotalQuestions int       `gorm:"default:0" json:"totalQuestions"`
}

func (Score) TableName() string {
	return "scores"
}
