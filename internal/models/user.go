package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	DisplayName string `json:"display_name" gorm:"not null;size:100"`
	Email       string `json:"email" gorm:"uniqueIndex;not null;size:255"`

	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
