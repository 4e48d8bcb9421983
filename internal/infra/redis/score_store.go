package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-gauntlet/internal/domain"
)

const leaderboardKey = "gauntlet:leaderboard"

// ScoreStore keeps leaderboard entries as a JSON list in Redis. Ordering
// happens on read; the list itself is append-only.
type ScoreStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreStore builds a store. A zero ttl keeps entries forever.
func NewScoreStore(client *redis.Client, ttl time.Duration) *ScoreStore {
	return &ScoreStore{client: client, ttl: ttl}
}

func (s *ScoreStore) Add(ctx context.Context, entry domain.LeaderboardEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, leaderboardKey, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, leaderboardKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis add score: %w", err)
	}
	return nil
}

func (s *ScoreStore) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	raw, err := s.client.LRange(ctx, leaderboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read scores: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue // skip rows written by older formats
		}
		entries = append(entries, entry)
	}

	domain.SortLeaderboard(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
