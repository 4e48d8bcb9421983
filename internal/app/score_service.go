package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"trivia-gauntlet/internal/domain"
)

// ScoreStore abstracts how leaderboard entries are persisted (in-memory,
// Redis, Postgres).
type ScoreStore interface {
	Add(ctx context.Context, entry domain.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// ScoreService contains the leaderboard use cases: accept submissions,
// serve the top entries, and fan fresh snapshots out to live subscribers.
type ScoreService struct {
	store ScoreStore
	limit int

	mu          sync.Mutex
	subscribers map[chan []domain.LeaderboardEntry]struct{}
}

func NewScoreService(store ScoreStore, limit int) *ScoreService {
	if limit <= 0 {
		limit = 25
	}
	return &ScoreService{
		store:       store,
		limit:       limit,
		subscribers: make(map[chan []domain.LeaderboardEntry]struct{}),
	}
}

// Submit validates and persists one finished run, then broadcasts the
// refreshed leaderboard.
func (s *ScoreService) Submit(ctx context.Context, sub domain.ScoreSubmission) error {
	if strings.TrimSpace(sub.Name) == "" {
		return fmt.Errorf("%w: name", domain.ErrInvalidInput)
	}
	if sub.Score < 0 || sub.Time < 0 {
		return fmt.Errorf("%w: score and time must be non-negative", domain.ErrInvalidInput)
	}

	entry := domain.LeaderboardEntry{Name: strings.TrimSpace(sub.Name), Score: sub.Score, Time: sub.Time}
	if err := s.store.Add(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrScoreSubmit, err)
	}

	if top, err := s.store.Top(ctx, s.limit); err == nil {
		s.broadcast(top)
	}
	return nil
}

// Top returns the current leaderboard, ordered by the store.
func (s *ScoreService) Top(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return s.store.Top(ctx, s.limit)
}

// Subscribe returns a channel that receives a leaderboard snapshot after
// every accepted submission. The caller must invoke the returned cancel
// function to avoid leaks.
func (s *ScoreService) Subscribe(ctx context.Context) (<-chan []domain.LeaderboardEntry, func(), error) {
	initial, err := s.store.Top(ctx, s.limit)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []domain.LeaderboardEntry, 8)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

func (s *ScoreService) broadcast(top []domain.LeaderboardEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- top:
		default:
			// Drop the stale snapshot so a slow client never blocks submissions.
			select {
			case <-ch:
			default:
			}
			ch <- top
		}
	}
}
