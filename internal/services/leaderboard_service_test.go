package services

import (
	"context"
	"testing"
	"time"

	"github.com/mroshb/buynothing/internal/models"
)

type fakeSpenders struct {
	users     []models.User
	callLimit int
}

func (f *fakeSpenders) TopSpenders(limit int) ([]models.User, error) {
	f.callLimit = limit
	if limit < len(f.users) {
		return f.users[:limit], nil
	}
	return f.users, nil
}

func TestLeaderboardTop(t *testing.T) {
	store := &fakeSpenders{users: []models.User{
		{Email: "whale@example.com", DisplayName: "Whale", TotalSpent: 100000},
		{Email: "mid@example.com", DisplayName: "Mid", TotalSpent: 700},
		{Email: "newbie@example.com", DisplayName: "Newbie", TotalSpent: 0},
	}}
	store.users[0].ID = 1
	store.users[1].ID = 2
	store.users[2].ID = 3

	svc := NewLeaderboardService(store, nil, 2, time.Minute)

	entries, err := svc.Top(context.Background())
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}

	if store.callLimit != 2 {
		t.Errorf("store queried with limit %d, want 2", store.callLimit)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].DisplayName != "Whale" || entries[0].TotalSpent != 100000 {
		t.Errorf("top entry = %+v", entries[0])
	}
	for _, e := range entries {
		if e.AvatarURL == "" && e.DisplayName == "" {
			t.Errorf("entry missing public fields: %+v", e)
		}
	}
}

func TestLeaderboardTop_Empty(t *testing.T) {
	svc := NewLeaderboardService(&fakeSpenders{}, nil, 100, time.Minute)

	entries, err := svc.Top(context.Background())
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	if entries == nil {
		t.Error("expected empty slice, not nil, for JSON rendering")
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}
