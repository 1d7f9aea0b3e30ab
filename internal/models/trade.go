package models

import (
	"time"
)

type Trade struct {
	ID         uint        `gorm:"primaryKey"`
	SenderID   uint        `gorm:"not null;index"`
	Sender     User        `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID uint        `gorm:"not null;index"`
	Receiver   User        `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Status     string      `gorm:"type:varchar(20);default:'pending';not null"`
	Items      []TradeItem `gorm:"foreignKey:TradeID"`
	CreatedAt  time.Time   `gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime"`
}

type TradeItem struct {
	ID          uint     `gorm:"primaryKey"`
	TradeID     uint     `gorm:"not null;index"`
	PurchaseID  uint     `gorm:"not null;index"`
	Purchase    Purchase `gorm:"foreignKey:PurchaseID"`
	OfferedByID uint     `gorm:"not null"`
}

// Trade status constants
const (
	TradeStatusPending  = "pending"
	TradeStatusAccepted = "accepted"
	TradeStatusRejected = "rejected"
)

func (Trade) TableName() string {
	return "trades"
}

func (TradeItem) TableName() string {
	return "trade_items"
}
