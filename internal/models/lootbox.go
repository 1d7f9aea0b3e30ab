package models

import (
	"time"

	"gorm.io/gorm"
)

type Lootbox struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index:idx_lootbox_owner_rarity"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Rarity    string     `gorm:"type:varchar(20);not null;index:idx_lootbox_owner_rarity"`
	Opened    bool       `gorm:"default:false;not null;index:idx_lootbox_owner_rarity"`
	OpenedAt  *time.Time `gorm:"default:NULL"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

// BeforeSave hook for validation
func (l *Lootbox) BeforeSave(tx *gorm.DB) error {
	if !ValidRarity(l.Rarity) {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Lootbox) TableName() string {
	return "lootboxes"
}
