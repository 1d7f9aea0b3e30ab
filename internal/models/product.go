package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"uniqueIndex;type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(100);index"`
	Price       int64     `gorm:"not null"`               // cents
	Rarity      string    `gorm:"type:varchar(20);index"` // empty for regular catalog items
	SalesCount  int64     `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Rarity tiers
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// RarityPrices maps a lootbox tier to its unit price in cents.
var RarityPrices = map[string]int64{
	RarityCommon:    100,
	RarityRare:      500,
	RarityEpic:      5000,
	RarityLegendary: 50000,
}

// ValidRarity reports whether r names a known lootbox tier.
func ValidRarity(r string) bool {
	_, ok := RarityPrices[r]
	return ok
}

// BeforeSave hook for validation
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Name == "" || p.Slug == "" {
		return gorm.ErrInvalidData
	}
	if p.Price <= 0 {
		return gorm.ErrInvalidData
	}
	if p.Rarity != "" && !ValidRarity(p.Rarity) {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}
