package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	DisplayName  string    `gorm:"type:varchar(100);not null"`
	AvatarURL    string    `gorm:"type:varchar(500)"`
	TotalSpent   int64     `gorm:"default:0;not null"` // cents, only ever increased by settlement
	PurchaseSeq  int64     `gorm:"default:0;not null"` // allocator for per-user purchase indexes
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Avatar URL prefix, completed with a random seed at signup
const DefaultAvatarPrefix = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Email == "" || u.DisplayName == "" {
		return gorm.ErrInvalidData
	}
	if u.TotalSpent < 0 {
		return gorm.ErrInvalidData
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
