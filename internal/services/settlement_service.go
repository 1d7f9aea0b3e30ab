package services

import (
	"context"

	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/internal/payment"
	"github.com/mroshb/buynothing/pkg/errors"
	"github.com/mroshb/buynothing/pkg/logger"
)

// SettlementStore applies confirmed payments to the ledger. The settle
// methods are transactional and return CONFLICT when the payment id was
// already settled.
type SettlementStore interface {
	SettleProduct(providerPaymentID string, userID uint, slug string) (*models.Purchase, error)
	SettleLootboxBundle(providerPaymentID string, userID uint, rarity string, quantity int) error
	IsSettled(providerPaymentID string) (bool, error)
}

// Webhook outcomes. Everything except OutcomeFailed answers 200 to the
// provider; OutcomeFailed answers 500 and invites a retry.
type WebhookOutcome int

const (
	OutcomeSettled WebhookOutcome = iota
	OutcomeAlreadySettled
	OutcomeNotPaid
	OutcomeFailed
)

// SettlementService is the single webhook reconciliation routine, covering
// both single-product and lootbox-bundle payments.
type SettlementService struct {
	store    SettlementStore
	provider payment.Provider
}

func NewSettlementService(store SettlementStore, provider payment.Provider) *SettlementService {
	return &SettlementService{
		store:    store,
		provider: provider,
	}
}

// HandleWebhook reconciles one provider notification. The payment is looked
// up at the provider (never trusted from the request body), then applied to
// the ledger in a single transaction keyed on the payment id.
func (s *SettlementService) HandleWebhook(ctx context.Context, paymentID string) (WebhookOutcome, error) {
	pay, err := s.provider.GetPayment(ctx, paymentID)
	if err != nil {
		return OutcomeFailed, err
	}

	if pay.Status != payment.StatusPaid {
		logger.Debug("Webhook for unpaid payment", "payment_id", paymentID, "status", pay.Status)
		return OutcomeNotPaid, nil
	}

	meta := pay.Metadata
	if meta.UserID == 0 {
		return OutcomeFailed, errors.New(errors.ErrCodeValidation, "payment metadata missing user id")
	}

	if meta.IsLootbox {
		if !models.ValidRarity(meta.Rarity) || meta.Quantity <= 0 {
			return OutcomeFailed, errors.New(errors.ErrCodeValidation, "invalid lootbox metadata")
		}
		err = s.store.SettleLootboxBundle(paymentID, meta.UserID, meta.Rarity, meta.Quantity)
	} else {
		if meta.Slug == "" {
			return OutcomeFailed, errors.New(errors.ErrCodeValidation, "payment metadata missing product slug")
		}
		_, err = s.store.SettleProduct(paymentID, meta.UserID, meta.Slug)
	}

	if err != nil {
		if errors.Code(err) == errors.ErrCodeConflict {
			logger.Info("Payment already settled", "payment_id", paymentID)
			return OutcomeAlreadySettled, nil
		}
		return OutcomeFailed, err
	}

	logger.Info("Payment settled",
		"payment_id", paymentID,
		"user_id", meta.UserID,
		"lootbox", meta.IsLootbox,
	)
	return OutcomeSettled, nil
}

// PaymentStatus answers the success page's poll. A payment the ledger has
// already settled is paid by definition; only unsettled ids go back to the
// provider.
func (s *SettlementService) PaymentStatus(ctx context.Context, paymentID string) (string, error) {
	settled, err := s.store.IsSettled(paymentID)
	if err == nil && settled {
		return payment.StatusPaid, nil
	}

	pay, err := s.provider.GetPayment(ctx, paymentID)
	if err != nil {
		return "", err
	}
	return pay.Status, nil
}
