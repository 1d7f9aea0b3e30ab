package services

import (
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/internal/repositories"
	"github.com/mroshb/buynothing/pkg/errors"
	"github.com/mroshb/buynothing/pkg/logger"
)

// LootboxStore is the slice of the lootbox repository the draw flow needs.
type LootboxStore interface {
	Open(userID uint, rarity string) (*repositories.DrawResult, error)
	CountUnopened(userID uint) (map[string]int64, error)
}

type LootboxService struct {
	boxes LootboxStore
}

func NewLootboxService(boxes LootboxStore) *LootboxService {
	return &LootboxService{boxes: boxes}
}

// Drop is what the shopper sees after opening a box.
type Drop struct {
	ProductName   string `json:"product_name"`
	PurchaseIndex int64  `json:"purchase_index"`
	Rarity        string `json:"rarity"`
}

// Open consumes one unopened box of the requested rarity and returns the draw.
func (s *LootboxService) Open(userID uint, rarity string) (*Drop, error) {
	if !models.ValidRarity(rarity) {
		return nil, errors.New(errors.ErrCodeValidation, "unknown rarity")
	}

	result, err := s.boxes.Open(userID, rarity)
	if err != nil {
		return nil, err
	}

	logger.Info("Lootbox opened",
		"user_id", userID,
		"rarity", rarity,
		"product", result.Product.Slug,
	)

	return &Drop{
		ProductName:   result.Product.Name,
		PurchaseIndex: result.PurchaseIndex,
		Rarity:        result.Product.Rarity,
	}, nil
}

// Counts returns the user's unopened box counts, zero-filled for every tier
// so the storefront can render all four slots.
func (s *LootboxService) Counts(userID uint) (map[string]int64, error) {
	counts, err := s.boxes.CountUnopened(userID)
	if err != nil {
		return nil, err
	}

	for rarity := range models.RarityPrices {
		if _, ok := counts[rarity]; !ok {
			counts[rarity] = 0
		}
	}

	return counts, nil
}
