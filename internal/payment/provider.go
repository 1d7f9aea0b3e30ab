package payment

import "context"

// Payment statuses as reported by the provider. Anything other than paid is
// left alone; the provider re-notifies on later transitions.
const (
	StatusOpen     = "open"
	StatusPaid     = "paid"
	StatusCanceled = "canceled"
	StatusExpired  = "expired"
	StatusFailed   = "failed"
)

// Metadata travels with the payment through the provider and back via the
// webhook; it is the only way settlement can reconstruct what was bought.
type Metadata struct {
	UserID    uint   `json:"user_id"`
	Slug      string `json:"slug,omitempty"`
	Rarity    string `json:"rarity,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	IsLootbox bool   `json:"is_lootbox,omitempty"`
}

type CreateRequest struct {
	AmountCents int64
	Description string
	Method      string
	RedirectURL string
	WebhookURL  string
	Metadata    Metadata
}

type Payment struct {
	ID          string
	Status      string
	CheckoutURL string
	Metadata    Metadata
}

// Provider is the hosted checkout gateway. Satisfied by the Mollie client and
// by test fakes.
type Provider interface {
	CreatePayment(ctx context.Context, req CreateRequest) (*Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
}
