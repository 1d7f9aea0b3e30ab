package services

import (
	"context"
	"testing"

	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/internal/payment"
	"github.com/mroshb/buynothing/pkg/errors"
)

type fakeProvider struct {
	payments map[string]*payment.Payment
	created  []payment.CreateRequest
}

func (f *fakeProvider) CreatePayment(ctx context.Context, req payment.CreateRequest) (*payment.Payment, error) {
	f.created = append(f.created, req)
	return &payment.Payment{
		ID:          "tr_new",
		Status:      payment.StatusOpen,
		CheckoutURL: "https://pay.example.com/tr_new",
		Metadata:    req.Metadata,
	}, nil
}

func (f *fakeProvider) GetPayment(ctx context.Context, id string) (*payment.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "payment not found at provider")
	}
	return p, nil
}

// fakeLedger mimics the transactional settlement store: first application of
// a payment id succeeds, every retry conflicts.
type fakeLedger struct {
	settled       map[string]bool
	salesBySlug   map[string]int
	spentByUser   map[uint]int64
	boxesByUser   map[uint]int
	productPrices map[string]int64

	failNext bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		settled:     map[string]bool{},
		salesBySlug: map[string]int{},
		spentByUser: map[uint]int64{},
		boxesByUser: map[uint]int{},
		productPrices: map[string]int64{
			"dads-approval": 200,
		},
	}
}

func (f *fakeLedger) SettleProduct(paymentID string, userID uint, slug string) (*models.Purchase, error) {
	if f.failNext {
		f.failNext = false
		return nil, errors.New(errors.ErrCodeInternalError, "write failed")
	}
	if f.settled[paymentID] {
		return nil, errors.New(errors.ErrCodeConflict, "payment already settled")
	}
	price, ok := f.productPrices[slug]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "product not found")
	}

	f.settled[paymentID] = true
	f.salesBySlug[slug]++
	f.spentByUser[userID] += price

	return &models.Purchase{UserID: userID, PurchaseIndex: int64(f.salesBySlug[slug])}, nil
}

func (f *fakeLedger) SettleLootboxBundle(paymentID string, userID uint, rarity string, quantity int) error {
	if f.settled[paymentID] {
		return errors.New(errors.ErrCodeConflict, "payment already settled")
	}

	f.settled[paymentID] = true
	f.boxesByUser[userID] += quantity
	f.spentByUser[userID] += models.RarityPrices[rarity] * int64(quantity)
	return nil
}

func (f *fakeLedger) IsSettled(paymentID string) (bool, error) {
	return f.settled[paymentID], nil
}

func paidProductPayment(id, slug string, userID uint) *payment.Payment {
	return &payment.Payment{
		ID:     id,
		Status: payment.StatusPaid,
		Metadata: payment.Metadata{
			UserID: userID,
			Slug:   slug,
		},
	}
}

func TestHandleWebhook_SettlesPaidProduct(t *testing.T) {
	ledger := newFakeLedger()
	provider := &fakeProvider{payments: map[string]*payment.Payment{
		"tr_1": paidProductPayment("tr_1", "dads-approval", 7),
	}}

	svc := NewSettlementService(ledger, provider)

	outcome, err := svc.HandleWebhook(context.Background(), "tr_1")
	if err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}
	if outcome != OutcomeSettled {
		t.Errorf("outcome = %v, want OutcomeSettled", outcome)
	}

	if ledger.salesBySlug["dads-approval"] != 1 {
		t.Errorf("sales count = %d, want 1", ledger.salesBySlug["dads-approval"])
	}
	if ledger.spentByUser[7] != 200 {
		t.Errorf("total spent = %d, want 200", ledger.spentByUser[7])
	}
}

func TestHandleWebhook_Idempotent(t *testing.T) {
	ledger := newFakeLedger()
	provider := &fakeProvider{payments: map[string]*payment.Payment{
		"tr_1": paidProductPayment("tr_1", "dads-approval", 7),
	}}

	svc := NewSettlementService(ledger, provider)

	// Provider retry: same notification twice
	for i := 0; i < 2; i++ {
		if _, err := svc.HandleWebhook(context.Background(), "tr_1"); err != nil {
			t.Fatalf("HandleWebhook() call %d error = %v", i+1, err)
		}
	}

	outcome, err := svc.HandleWebhook(context.Background(), "tr_1")
	if err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}
	if outcome != OutcomeAlreadySettled {
		t.Errorf("outcome = %v, want OutcomeAlreadySettled", outcome)
	}

	if ledger.salesBySlug["dads-approval"] != 1 {
		t.Errorf("sales count after retries = %d, want 1", ledger.salesBySlug["dads-approval"])
	}
	if ledger.spentByUser[7] != 200 {
		t.Errorf("total spent after retries = %d, want 200", ledger.spentByUser[7])
	}
}

func TestHandleWebhook_NotPaid(t *testing.T) {
	ledger := newFakeLedger()
	provider := &fakeProvider{payments: map[string]*payment.Payment{
		"tr_open": {
			ID:       "tr_open",
			Status:   payment.StatusOpen,
			Metadata: payment.Metadata{UserID: 7, Slug: "dads-approval"},
		},
	}}

	svc := NewSettlementService(ledger, provider)

	outcome, err := svc.HandleWebhook(context.Background(), "tr_open")
	if err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}
	if outcome != OutcomeNotPaid {
		t.Errorf("outcome = %v, want OutcomeNotPaid", outcome)
	}

	if len(ledger.settled) != 0 {
		t.Error("unpaid payment must not touch the ledger")
	}
}

func TestHandleWebhook_InvalidMetadata(t *testing.T) {
	tests := []struct {
		name string
		meta payment.Metadata
	}{
		{
			name: "Missing user id",
			meta: payment.Metadata{Slug: "dads-approval"},
		},
		{
			name: "Missing slug on product payment",
			meta: payment.Metadata{UserID: 7},
		},
		{
			name: "Lootbox without rarity",
			meta: payment.Metadata{UserID: 7, IsLootbox: true, Quantity: 2},
		},
		{
			name: "Lootbox with zero quantity",
			meta: payment.Metadata{UserID: 7, IsLootbox: true, Rarity: models.RarityRare},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger()
			provider := &fakeProvider{payments: map[string]*payment.Payment{
				"tr_bad": {ID: "tr_bad", Status: payment.StatusPaid, Metadata: tt.meta},
			}}

			svc := NewSettlementService(ledger, provider)

			outcome, err := svc.HandleWebhook(context.Background(), "tr_bad")
			if err == nil {
				t.Fatal("HandleWebhook() expected error for invalid metadata, got nil")
			}
			if outcome != OutcomeFailed {
				t.Errorf("outcome = %v, want OutcomeFailed", outcome)
			}
			if len(ledger.settled) != 0 {
				t.Error("invalid metadata must not touch the ledger")
			}
		})
	}
}

func TestHandleWebhook_LootboxBundle(t *testing.T) {
	ledger := newFakeLedger()
	provider := &fakeProvider{payments: map[string]*payment.Payment{
		"tr_box": {
			ID:     "tr_box",
			Status: payment.StatusPaid,
			Metadata: payment.Metadata{
				UserID:    9,
				Rarity:    models.RarityRare,
				Quantity:  3,
				IsLootbox: true,
			},
		},
	}}

	svc := NewSettlementService(ledger, provider)

	outcome, err := svc.HandleWebhook(context.Background(), "tr_box")
	if err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}
	if outcome != OutcomeSettled {
		t.Errorf("outcome = %v, want OutcomeSettled", outcome)
	}

	if ledger.boxesByUser[9] != 3 {
		t.Errorf("boxes granted = %d, want 3", ledger.boxesByUser[9])
	}
	// 3x rare at 500 cents
	if ledger.spentByUser[9] != 1500 {
		t.Errorf("total spent = %d, want 1500", ledger.spentByUser[9])
	}
}

func TestHandleWebhook_StoreFailureInvitesRetry(t *testing.T) {
	ledger := newFakeLedger()
	ledger.failNext = true
	provider := &fakeProvider{payments: map[string]*payment.Payment{
		"tr_1": paidProductPayment("tr_1", "dads-approval", 7),
	}}

	svc := NewSettlementService(ledger, provider)

	outcome, err := svc.HandleWebhook(context.Background(), "tr_1")
	if err == nil {
		t.Fatal("HandleWebhook() expected error when store fails, got nil")
	}
	if outcome != OutcomeFailed {
		t.Errorf("outcome = %v, want OutcomeFailed", outcome)
	}

	// The failed attempt rolled back; the retry settles exactly once.
	outcome, err = svc.HandleWebhook(context.Background(), "tr_1")
	if err != nil {
		t.Fatalf("HandleWebhook() retry error = %v", err)
	}
	if outcome != OutcomeSettled {
		t.Errorf("retry outcome = %v, want OutcomeSettled", outcome)
	}
	if ledger.spentByUser[7] != 200 {
		t.Errorf("total spent after failed attempt + retry = %d, want 200", ledger.spentByUser[7])
	}
}

func TestPaymentStatus(t *testing.T) {
	ledger := newFakeLedger()
	provider := &fakeProvider{payments: map[string]*payment.Payment{
		"tr_1": paidProductPayment("tr_1", "dads-approval", 7),
	}}
	svc := NewSettlementService(ledger, provider)

	if _, err := svc.HandleWebhook(context.Background(), "tr_1"); err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}

	// Settled payments answer from the ledger even if the provider forgot
	delete(provider.payments, "tr_1")

	status, err := svc.PaymentStatus(context.Background(), "tr_1")
	if err != nil {
		t.Fatalf("PaymentStatus() error = %v", err)
	}
	if status != payment.StatusPaid {
		t.Errorf("status = %q, want paid", status)
	}
}

func TestPaymentStatus_UnsettledPollsProvider(t *testing.T) {
	ledger := newFakeLedger()
	provider := &fakeProvider{payments: map[string]*payment.Payment{
		"tr_open": {ID: "tr_open", Status: payment.StatusOpen},
	}}
	svc := NewSettlementService(ledger, provider)

	status, err := svc.PaymentStatus(context.Background(), "tr_open")
	if err != nil {
		t.Fatalf("PaymentStatus() error = %v", err)
	}
	if status != payment.StatusOpen {
		t.Errorf("status = %q, want open", status)
	}
}

func TestHandleWebhook_ProviderUnreachable(t *testing.T) {
	svc := NewSettlementService(newFakeLedger(), &fakeProvider{payments: map[string]*payment.Payment{}})

	outcome, err := svc.HandleWebhook(context.Background(), "tr_unknown")
	if err == nil {
		t.Fatal("HandleWebhook() expected error for unknown payment, got nil")
	}
	if outcome != OutcomeFailed {
		t.Errorf("outcome = %v, want OutcomeFailed", outcome)
	}
}
