package memory

import (
	"context"
	"sync"

	"trivia-gauntlet/internal/domain"
)

// ScoreStore is an in-memory implementation of app.ScoreStore, useful for
// tests and demo runs without external services.
type ScoreStore struct {
	mu      sync.RWMutex
	entries []domain.LeaderboardEntry
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{}
}

func (s *ScoreStore) Add(_ context.Context, entry domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *ScoreStore) Top(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	entries := append([]domain.LeaderboardEntry(nil), s.entries...)
	s.mu.RUnlock()

	domain.SortLeaderboard(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
