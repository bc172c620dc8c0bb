package model

// swagger:model Chapter
type Chapter struct {
	BaseModel
	SubjectID   uint   `gorm:"index;not null" json:"subjectId"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Chapter) TableName() string {
	return "chapters"
}
