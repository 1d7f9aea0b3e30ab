package repositories

import (
	"fmt"
	"time"

	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettlementRepository applies confirmed payments to the ledger. Every
// settlement is one transaction: the PaymentRecord insert is the idempotency
// gate, and a retry after partial failure re-runs against a rolled-back
// state, so effects can never be applied twice or in part.
type SettlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// SettleProduct records a confirmed single-product payment: marks the payment
// settled, bumps the product's sales counter and the buyer's total spend, and
// grants the purchase. Returns the created purchase.
func (r *SettlementRepository) SettleProduct(providerPaymentID string, userID uint, slug string) (*models.Purchase, error) {
	var purchase *models.Purchase

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slug = ?", slug).First(&product).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "product not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get product")
		}

		record := &models.PaymentRecord{
			ProviderPaymentID: providerPaymentID,
			UserID:            userID,
			ProductID:         &product.ID,
			Amount:            product.Price,
			Kind:              models.PaymentKindProduct,
		}
		if err := tx.Create(record).Error; err != nil {
			if err == gorm.ErrDuplicatedKey {
				return errors.New(errors.ErrCodeConflict, "payment already settled")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create payment record")
		}

		if err := tx.Model(&product).
			Update("sales_count", product.SalesCount+1).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update sales count")
		}

		index, err := creditSpend(tx, userID, product.Price, 1)
		if err != nil {
			return err
		}

		purchase = &models.Purchase{
			UserID:        userID,
			ProductID:     product.ID,
			PurchaseIndex: index,
			Source:        models.PurchaseSourcePayment,
		}
		if err := tx.Create(purchase).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create purchase")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// SettleLootboxBundle records a confirmed lootbox-bundle payment: marks the
// payment settled, bumps the buyer's total spend and grants quantity unopened
// boxes of the given rarity.
func (r *SettlementRepository) SettleLootboxBundle(providerPaymentID string, userID uint, rarity string, quantity int) error {
	unitPrice, ok := models.RarityPrices[rarity]
	if !ok {
		return errors.New(errors.ErrCodeValidation, fmt.Sprintf("unknown rarity %q", rarity))
	}
	if quantity <= 0 {
		return errors.New(errors.ErrCodeValidation, "quantity must be positive")
	}

	total := unitPrice * int64(quantity)

	return r.db.Transaction(func(tx *gorm.DB) error {
		record := &models.PaymentRecord{
			ProviderPaymentID: providerPaymentID,
			UserID:            userID,
			ProductID:         nil,
			Amount:            total,
			Kind:              models.PaymentKindLootbox,
		}
		if err := tx.Create(record).Error; err != nil {
			if err == gorm.ErrDuplicatedKey {
				return errors.New(errors.ErrCodeConflict, "payment already settled")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create payment record")
		}

		if _, err := creditSpend(tx, userID, total, 0); err != nil {
			return err
		}

		boxes := make([]models.Lootbox, quantity)
		for i := range boxes {
			boxes[i] = models.Lootbox{UserID: userID, Rarity: rarity}
		}
		if err := tx.Create(&boxes).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create lootboxes")
		}

		return nil
	})
}

// IsSettled reports whether a provider payment id has already been applied.
func (r *SettlementRepository) IsSettled(providerPaymentID string) (bool, error) {
	var count int64
	result := r.db.Model(&models.PaymentRecord{}).
		Where("provider_payment_id = ?", providerPaymentID).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check payment record")
	}

	return count > 0, nil
}

// creditSpend locks the user row, adds amount to total_spent and advances the
// purchase index allocator by seqSteps. Returns the first allocated index
// (meaningful only when seqSteps > 0).
func creditSpend(tx *gorm.DB, userID uint, amount int64, seqSteps int64) (int64, error) {
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.New(errors.ErrCodeNotFound, "user not found")
		}
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
	}

	updates := map[string]interface{}{
		"total_spent":  user.TotalSpent + amount,
		"purchase_seq": user.PurchaseSeq + seqSteps,
		"updated_at":   time.Now().UTC(),
	}
	if err := tx.Model(&user).Updates(updates).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update user spend")
	}

	return user.PurchaseSeq + 1, nil
}
