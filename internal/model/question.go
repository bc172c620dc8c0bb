package model

// Question 单选题，四个选项以文本形式编码存储（见 util.DecodeOptions）
// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint   `gorm:"index;not null" json:"quizId"`
	QuestionText  string `gorm:"type:text;not null" json:"questionText"`
	Options       string `gorm:"type:text;not null" json:"options"`   // JSON 数组（历史行可能是旧的列表字面量格式）
	CorrectAnswer int    `gorm:"not null" json:"-"`                   // 正确选项下标 0-3，不下发给学生端
}

func (Question) TableName() string {
	return "questions"
}
