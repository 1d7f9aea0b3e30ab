package models

import (
	"time"
)

// PaymentRecord is the settlement idempotency marker. The unique index on
// ProviderPaymentID is what makes a webhook retry a no-op: the settlement
// transaction inserts this row first and aborts on conflict.
type PaymentRecord struct {
	ID                uint      `gorm:"primaryKey"`
	ProviderPaymentID string    `gorm:"uniqueIndex;type:varchar(64);not null"`
	UserID            uint      `gorm:"not null;index"`
	ProductID         *uint     `gorm:"default:NULL"` // nil for lootbox bundles
	Amount            int64     `gorm:"not null"`     // cents
	Kind              string    `gorm:"type:varchar(20);not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

// Settlement kind constants
const (
	PaymentKindProduct = "product"
	PaymentKindLootbox = "lootbox"
)

func (PaymentRecord) TableName() string {
	return "payment_records"
}
