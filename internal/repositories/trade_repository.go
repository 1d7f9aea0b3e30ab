package repositories

import (
	"fmt"

	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create opens a pending trade. Every offered purchase must currently belong
// to the party it is tagged with; ownership is re-verified at acceptance.
func (r *TradeRepository) Create(senderID, receiverID uint, senderItems, receiverItems []uint) (*models.Trade, error) {
	var trade *models.Trade

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := verifyOwnership(tx, senderID, senderItems); err != nil {
			return err
		}
		if err := verifyOwnership(tx, receiverID, receiverItems); err != nil {
			return err
		}

		trade = &models.Trade{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     models.TradeStatusPending,
		}
		if err := tx.Create(trade).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create trade")
		}

		items := make([]models.TradeItem, 0, len(senderItems)+len(receiverItems))
		for _, id := range senderItems {
			items = append(items, models.TradeItem{TradeID: trade.ID, PurchaseID: id, OfferedByID: senderID})
		}
		for _, id := range receiverItems {
			items = append(items, models.TradeItem{TradeID: trade.ID, PurchaseID: id, OfferedByID: receiverID})
		}

		if err := tx.Create(&items).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create trade items")
		}
		trade.Items = items

		return nil
	})

	if err != nil {
		return nil, err
	}
	return trade, nil
}

// GetByID retrieves a trade with its items and their purchases
func (r *TradeRepository) GetByID(tradeID uint) (*models.Trade, error) {
	var trade models.Trade
	result := r.db.
		Preload("Items").
		Preload("Items.Purchase").
		Preload("Items.Purchase.Product").
		First(&trade, tradeID)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "trade not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get trade")
	}

	return &trade, nil
}

// ListForUser retrieves trades where the user is sender or receiver
func (r *TradeRepository) ListForUser(userID uint) ([]models.Trade, error) {
	var trades []models.Trade
	result := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Preload("Items").
		Preload("Items.Purchase").
		Preload("Items.Purchase.Product").
		Order("created_at DESC").
		Find(&trades)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list trades")
	}

	return trades, nil
}

// Accept resolves a pending trade and swaps ownership of every offered item,
// all in one transaction: either every purchase moves or none do. Only the
// receiver may accept, and only while the trade is pending. Ownership of each
// item is re-checked under lock; a purchase that changed hands since the
// offer aborts the whole acceptance.
func (r *TradeRepository) Accept(tradeID, callerID uint) (*models.Trade, error) {
	var accepted *models.Trade

	err := r.db.Transaction(func(tx *gorm.DB) error {
		trade, err := lockPendingTrade(tx, tradeID, callerID)
		if err != nil {
			return err
		}

		var items []models.TradeItem
		if err := tx.Where("trade_id = ?", tradeID).Find(&items).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load trade items")
		}

		if err := applyTradeTransfers(gormTransferOps{tx: tx}, trade, items); err != nil {
			return err
		}

		if err := tx.Model(trade).Update("status", models.TradeStatusAccepted).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update trade status")
		}

		trade.Status = models.TradeStatusAccepted
		accepted = trade
		return nil
	})

	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// Reject resolves a pending trade with no ownership changes
func (r *TradeRepository) Reject(tradeID, callerID uint) (*models.Trade, error) {
	var rejected *models.Trade

	err := r.db.Transaction(func(tx *gorm.DB) error {
		trade, err := lockPendingTrade(tx, tradeID, callerID)
		if err != nil {
			return err
		}

		if err := tx.Model(trade).Update("status", models.TradeStatusRejected).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update trade status")
		}

		trade.Status = models.TradeStatusRejected
		rejected = trade
		return nil
	})

	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// tradeTransferOps is the slice of transactional state the acceptance swap
// touches, extracted so the swap rules are testable without a database.
type tradeTransferOps interface {
	LockPurchase(purchaseID uint) (*models.Purchase, error)
	NextPurchaseIndex(userID uint) (int64, error)
	SavePurchase(purchase *models.Purchase) error
}

// applyTradeTransfers moves every offered item to the other party. Each
// purchase must still belong to the party that offered it; any mismatch or
// missing item aborts the swap, and the caller's transaction rolls back
// whatever was already moved.
func applyTradeTransfers(ops tradeTransferOps, trade *models.Trade, items []models.TradeItem) error {
	for _, item := range items {
		purchase, err := ops.LockPurchase(item.PurchaseID)
		if err != nil {
			return err
		}

		if purchase.UserID != item.OfferedByID {
			return errors.New(errors.ErrCodeConflict,
				fmt.Sprintf("purchase %d changed hands since the offer", purchase.ID))
		}

		newOwner := trade.SenderID
		if item.OfferedByID == trade.SenderID {
			newOwner = trade.ReceiverID
		}

		index, err := ops.NextPurchaseIndex(newOwner)
		if err != nil {
			return err
		}

		purchase.UserID = newOwner
		purchase.PurchaseIndex = index
		purchase.Highlighted = false
		purchase.Source = models.PurchaseSourceTrade

		if err := ops.SavePurchase(purchase); err != nil {
			return err
		}
	}

	return nil
}

type gormTransferOps struct {
	tx *gorm.DB
}

func (o gormTransferOps) LockPurchase(purchaseID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := o.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&purchase, purchaseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeConflict, "offered item no longer exists")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to lock purchase")
	}
	return &purchase, nil
}

func (o gormTransferOps) NextPurchaseIndex(userID uint) (int64, error) {
	return creditSpend(o.tx, userID, 0, 1)
}

func (o gormTransferOps) SavePurchase(purchase *models.Purchase) error {
	if err := o.tx.Model(purchase).Updates(map[string]interface{}{
		"user_id":        purchase.UserID,
		"purchase_index": purchase.PurchaseIndex,
		"highlighted":    purchase.Highlighted,
		"source":         purchase.Source,
	}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to transfer purchase")
	}
	return nil
}

func lockPendingTrade(tx *gorm.DB, tradeID, callerID uint) (*models.Trade, error) {
	var trade models.Trade
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&trade, tradeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "trade not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get trade")
	}

	if trade.ReceiverID != callerID {
		return nil, errors.New(errors.ErrCodeForbidden, "only the receiver may resolve a trade")
	}
	if trade.Status != models.TradeStatusPending {
		return nil, errors.New(errors.ErrCodeConflict, "trade already resolved")
	}

	return &trade, nil
}

func verifyOwnership(tx *gorm.DB, ownerID uint, purchaseIDs []uint) error {
	if len(purchaseIDs) == 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Purchase{}).
		Where("id IN ? AND user_id = ?", purchaseIDs, ownerID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to verify ownership")
	}

	if count != int64(len(purchaseIDs)) {
		return errors.New(errors.ErrCodeValidation, "offered items must belong to the offering party")
	}

	return nil
}
