package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const leaderboardCacheKey = "leaderboard:top_spenders"

// LeaderboardEntry is the public shape of a leaderboard row.
type LeaderboardEntry struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	TotalSpent  int64  `json:"total_spent"`
}

// SpenderStore is the slice of the user repository the leaderboard needs.
type SpenderStore interface {
	TopSpenders(limit int) ([]models.User, error)
}

// LeaderboardService serves the top-spenders board, cached in redis when a
// client is configured. Cache misses and redis failures fall through to the
// database.
type LeaderboardService struct {
	users SpenderStore
	cache *redis.Client
	size  int
	ttl   time.Duration
}

func NewLeaderboardService(users SpenderStore, cache *redis.Client, size int, ttl time.Duration) *LeaderboardService {
	return &LeaderboardService{
		users: users,
		cache: cache,
		size:  size,
		ttl:   ttl,
	}
}

func (s *LeaderboardService) Top(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, leaderboardCacheKey).Bytes(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal(cached, &entries) == nil {
				return entries, nil
			}
		}
	}

	users, err := s.users.TopSpenders(s.size)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:      u.ID,
			DisplayName: u.DisplayName,
			AvatarURL:   u.AvatarURL,
			TotalSpent:  u.TotalSpent,
		})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, payload, s.ttl).Err(); err != nil {
				logger.Warn("Failed to cache leaderboard", "error", err)
			}
		}
	}

	return entries, nil
}
