package repositories

import (
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// ListByUser returns a user's inventory, newest first
func (r *PurchaseRepository) ListByUser(userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	result := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&purchases)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list purchases")
	}

	return purchases, nil
}

// ToggleHighlight flips the showcase flag on an owned purchase. Turning a
// highlight on is capped at showcaseLimit items per user; the count check and
// the flip run in one transaction with the row locked.
func (r *PurchaseRepository) ToggleHighlight(purchaseID, userID uint, showcaseLimit int) (bool, error) {
	var highlighted bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&purchase, purchaseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "purchase not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get purchase")
		}

		if purchase.UserID != userID {
			return errors.New(errors.ErrCodeForbidden, "purchase belongs to another user")
		}

		if !purchase.Highlighted {
			var count int64
			if err := tx.Model(&models.Purchase{}).
				Where("user_id = ? AND highlighted = true", userID).
				Count(&count).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to count highlights")
			}
			if count >= int64(showcaseLimit) {
				return errors.New(errors.ErrCodeValidation, "showcase is full")
			}
		}

		highlighted = !purchase.Highlighted
		if err := tx.Model(&purchase).Update("highlighted", highlighted).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update highlight")
		}

		return nil
	})

	if err != nil {
		return false, err
	}
	return highlighted, nil
}
