package model

// UserAnswer 记录一次提交中每道题的原始作答（未作答时为空字符串）
type UserAnswer struct {
	BaseModel
	ScoreID    uint   `gorm:"index;not null" json:"scoreId"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	UserAnswer string `gorm:"size:10" json:"userAnswer"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
