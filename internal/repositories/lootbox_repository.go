package repositories

import (
	"time"

	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LootboxRepository struct {
	db *gorm.DB
}

func NewLootboxRepository(db *gorm.DB) *LootboxRepository {
	return &LootboxRepository{db: db}
}

// DrawResult is what an opened box resolved to.
type DrawResult struct {
	Product       models.Product
	PurchaseIndex int64
}

// Open consumes one unopened box of the given rarity and grants a random
// reward from that rarity's pool. The whole draw runs in one transaction with
// the box and user rows locked, so a box can be opened exactly once even
// under concurrent calls.
func (r *LootboxRepository) Open(userID uint, rarity string) (*DrawResult, error) {
	var result *DrawResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var box models.Lootbox
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND rarity = ? AND opened = false", userID, rarity).
			Order("created_at ASC").
			First(&box).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNoBoxAvailable, "no unopened box of this rarity")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to select lootbox")
		}

		now := time.Now().UTC()
		if err := tx.Model(&box).Updates(map[string]interface{}{
			"opened":    true,
			"opened_at": now,
		}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to mark box opened")
		}

		// Uniform draw within the tier
		var product models.Product
		if err := tx.Where("rarity = ?", rarity).
			Order("RANDOM()").
			First(&product).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeEmptyRarityPool, "no products in this rarity tier")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to draw reward")
		}

		index, err := creditSpend(tx, userID, 0, 1)
		if err != nil {
			return err
		}

		purchase := &models.Purchase{
			UserID:        userID,
			ProductID:     product.ID,
			PurchaseIndex: index,
			Source:        models.PurchaseSourceLootbox,
		}
		if err := tx.Create(purchase).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create purchase")
		}

		result = &DrawResult{Product: product, PurchaseIndex: index}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// CountUnopened returns the user's unopened box counts keyed by rarity.
func (r *LootboxRepository) CountUnopened(userID uint) (map[string]int64, error) {
	type row struct {
		Rarity string
		Count  int64
	}

	var rows []row
	result := r.db.Model(&models.Lootbox{}).
		Select("rarity, COUNT(*) as count").
		Where("user_id = ? AND opened = false", userID).
		Group("rarity").
		Scan(&rows)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count lootboxes")
	}

	counts := make(map[string]int64)
	for _, r := range rows {
		counts[r.Rarity] = r.Count
	}

	return counts, nil
}
