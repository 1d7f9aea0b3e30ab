package services

import (
	"context"
	"fmt"

	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/internal/payment"
	"github.com/mroshb/buynothing/pkg/errors"
)

// ProductGetter is the slice of the product repository checkout needs.
type ProductGetter interface {
	GetBySlug(slug string) (*models.Product, error)
	ListByRarity(rarity string) ([]models.Product, error)
}

// CheckoutService builds hosted-checkout payments. The provider calls us back
// on /api/webhooks/payment; everything settlement later needs is carried in
// the payment metadata.
type CheckoutService struct {
	products  ProductGetter
	provider  payment.Provider
	returnURL string
	baseURL   string
}

func NewCheckoutService(products ProductGetter, provider payment.Provider, publicBaseURL, returnURL string) *CheckoutService {
	if returnURL == "" {
		returnURL = publicBaseURL + "/success"
	}
	return &CheckoutService{
		products:  products,
		provider:  provider,
		returnURL: returnURL,
		baseURL:   publicBaseURL,
	}
}

func (s *CheckoutService) webhookURL() string {
	return s.baseURL + "/api/webhooks/payment"
}

// CheckoutProduct starts a hosted checkout for a single catalog item and
// returns the redirect URL.
func (s *CheckoutService) CheckoutProduct(ctx context.Context, userID uint, slug, method string) (string, error) {
	if slug == "" {
		return "", errors.New(errors.ErrCodeValidation, "product slug is required")
	}

	product, err := s.products.GetBySlug(slug)
	if err != nil {
		return "", err
	}
	if product.Price <= 0 {
		return "", errors.New(errors.ErrCodeValidation, "product is not purchasable")
	}

	pay, err := s.provider.CreatePayment(ctx, payment.CreateRequest{
		AmountCents: product.Price,
		Description: product.Name,
		Method:      method,
		RedirectURL: s.returnURL,
		WebhookURL:  s.webhookURL(),
		Metadata: payment.Metadata{
			UserID: userID,
			Slug:   product.Slug,
		},
	})
	if err != nil {
		return "", err
	}

	return pay.CheckoutURL, nil
}

// CheckoutLootboxes starts a hosted checkout for a bundle of boxes of one
// rarity tier.
func (s *CheckoutService) CheckoutLootboxes(ctx context.Context, userID uint, rarity string, quantity int, method string) (string, error) {
	unitPrice, ok := models.RarityPrices[rarity]
	if !ok {
		return "", errors.New(errors.ErrCodeValidation, fmt.Sprintf("unknown rarity %q", rarity))
	}
	if quantity <= 0 {
		return "", errors.New(errors.ErrCodeValidation, "quantity must be positive")
	}

	// Never sell boxes that cannot be opened
	pool, err := s.products.ListByRarity(rarity)
	if err != nil {
		return "", err
	}
	if len(pool) == 0 {
		return "", errors.New(errors.ErrCodeEmptyRarityPool, "no rewards exist for this rarity")
	}

	pay, err := s.provider.CreatePayment(ctx, payment.CreateRequest{
		AmountCents: unitPrice * int64(quantity),
		Description: fmt.Sprintf("%dx %s Lootbox", quantity, rarity),
		Method:      method,
		RedirectURL: s.returnURL,
		WebhookURL:  s.webhookURL(),
		Metadata: payment.Metadata{
			UserID:    userID,
			Rarity:    rarity,
			Quantity:  quantity,
			IsLootbox: true,
		},
	})
	if err != nil {
		return "", err
	}

	return pay.CheckoutURL, nil
}
