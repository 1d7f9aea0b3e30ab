package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mroshb/buynothing/pkg/errors"
)

func TestCreatePayment(t *testing.T) {
	var got molliePaymentBody
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/payments" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request body: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id": "tr_abc123",
			"status": "open",
			"metadata": {"user_id": 7, "slug": "dads-approval"},
			"_links": {"checkout": {"href": "https://pay.example.com/tr_abc123"}}
		}`))
	}))
	defer server.Close()

	client := NewMollieClient("live_key", server.URL, 5*time.Second)

	pay, err := client.CreatePayment(context.Background(), CreateRequest{
		AmountCents: 250,
		Description: "Dad's Approval",
		RedirectURL: "https://buynothing.example.com/success",
		WebhookURL:  "https://buynothing.example.com/api/webhooks/payment",
		Metadata:    Metadata{UserID: 7, Slug: "dads-approval"},
	})
	if err != nil {
		t.Fatalf("CreatePayment() error = %v", err)
	}

	if gotAuth != "Bearer live_key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if got.Amount.Currency != "EUR" || got.Amount.Value != "2.50" {
		t.Errorf("amount = %+v, want EUR 2.50", got.Amount)
	}
	if got.Metadata.UserID != 7 || got.Metadata.Slug != "dads-approval" {
		t.Errorf("metadata = %+v", got.Metadata)
	}
	if got.WebhookURL != "https://buynothing.example.com/api/webhooks/payment" {
		t.Errorf("webhook url = %q", got.WebhookURL)
	}

	if pay.ID != "tr_abc123" {
		t.Errorf("payment id = %q", pay.ID)
	}
	if pay.CheckoutURL != "https://pay.example.com/tr_abc123" {
		t.Errorf("checkout url = %q", pay.CheckoutURL)
	}
	if pay.Status != StatusOpen {
		t.Errorf("status = %q, want open", pay.Status)
	}
}

func TestCreatePayment_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status": 422, "title": "Unprocessable Entity"}`))
	}))
	defer server.Close()

	client := NewMollieClient("live_key", server.URL, 5*time.Second)

	_, err := client.CreatePayment(context.Background(), CreateRequest{AmountCents: 100})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Code(err) != errors.ErrCodeUpstreamFailure {
		t.Errorf("error code = %s, want %s", errors.Code(err), errors.ErrCodeUpstreamFailure)
	}
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/tr_abc123" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": "tr_abc123",
			"status": "paid",
			"metadata": {"user_id": 9, "rarity": "rare", "quantity": 3, "is_lootbox": true}
		}`))
	}))
	defer server.Close()

	client := NewMollieClient("live_key", server.URL, 5*time.Second)

	pay, err := client.GetPayment(context.Background(), "tr_abc123")
	if err != nil {
		t.Fatalf("GetPayment() error = %v", err)
	}

	if pay.Status != StatusPaid {
		t.Errorf("status = %q, want paid", pay.Status)
	}
	meta := pay.Metadata
	if !meta.IsLootbox || meta.UserID != 9 || meta.Rarity != "rare" || meta.Quantity != 3 {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestGetPayment_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewMollieClient("live_key", server.URL, 5*time.Second)

	_, err := client.GetPayment(context.Background(), "tr_missing")
	if errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("error code = %s, want %s", errors.Code(err), errors.ErrCodeNotFound)
	}
}
