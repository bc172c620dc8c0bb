package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Username      string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash  string     `gorm:"size:256;not null" json:"-"`
	FullName      string     `gorm:"size:100;not null" json:"fullName"`
	Qualification string     `gorm:"size:100" json:"qualification"`
	DOB           *time.Time `gorm:"type:date" json:"dob,omitempty"`
	IsAdmin       bool       `gorm:"default:false" json:"isAdmin"`
	Avatar        string     `gorm:"size:255" json:"avatar"`
}

func (User) TableName() string {
	return "users"
}
