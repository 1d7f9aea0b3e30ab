package models

import (
	"testing"
)

func TestTradeStatusConstants(t *testing.T) {
	if TradeStatusPending != "pending" {
		t.Errorf("TradeStatusPending = %q, want %q", TradeStatusPending, "pending")
	}
	if TradeStatusAccepted != "accepted" {
		t.Errorf("TradeStatusAccepted = %q, want %q", TradeStatusAccepted, "accepted")
	}
	if TradeStatusRejected != "rejected" {
		t.Errorf("TradeStatusRejected = %q, want %q", TradeStatusRejected, "rejected")
	}
}

func TestPurchaseSourceConstants(t *testing.T) {
	if PurchaseSourcePayment != "payment" {
		t.Errorf("PurchaseSourcePayment = %q, want %q", PurchaseSourcePayment, "payment")
	}
	if PurchaseSourceLootbox != "lootbox" {
		t.Errorf("PurchaseSourceLootbox = %q, want %q", PurchaseSourceLootbox, "lootbox")
	}
	if PurchaseSourceTrade != "trade" {
		t.Errorf("PurchaseSourceTrade = %q, want %q", PurchaseSourceTrade, "trade")
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Trade", Trade{}.TableName(), "trades"},
		{"TradeItem", TradeItem{}.TableName(), "trade_items"},
		{"Purchase", Purchase{}.TableName(), "purchases"},
		{"Lootbox", Lootbox{}.TableName(), "lootboxes"},
		{"PaymentRecord", PaymentRecord{}.TableName(), "payment_records"},
		{"User", User{}.TableName(), "users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("TableName() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestUser_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name: "Valid user",
			user: User{
				Email:       "nobody@example.com",
				DisplayName: "nobody",
			},
			wantErr: false,
		},
		{
			name: "Missing email",
			user: User{
				DisplayName: "nobody",
			},
			wantErr: true,
		},
		{
			name: "Missing display name",
			user: User{
				Email: "nobody@example.com",
			},
			wantErr: true,
		},
		{
			name: "Negative total spent",
			user: User{
				Email:       "nobody@example.com",
				DisplayName: "nobody",
				TotalSpent:  -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLootbox_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		rarity  string
		wantErr bool
	}{
		{
			name:    "Valid rarity",
			rarity:  RarityRare,
			wantErr: false,
		},
		{
			name:    "Empty rarity",
			rarity:  "",
			wantErr: true,
		},
		{
			name:    "Unknown rarity",
			rarity:  "ultra",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := &Lootbox{UserID: 1, Rarity: tt.rarity}

			err := box.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
