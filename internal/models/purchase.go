package models

import (
	"time"
)

type Purchase struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"not null;index"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID     uint      `gorm:"not null;index"`
	Product       Product   `gorm:"foreignKey:ProductID"`
	PurchaseIndex int64     `gorm:"not null"` // per-user sequential display number
	Highlighted   bool      `gorm:"default:false;not null"`
	Source        string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// Purchase source constants
const (
	PurchaseSourcePayment = "payment"
	PurchaseSourceLootbox = "lootbox"
	PurchaseSourceTrade   = "trade"
)

func (Purchase) TableName() string {
	return "purchases"
}
