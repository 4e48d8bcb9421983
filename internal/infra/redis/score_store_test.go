package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-gauntlet/internal/domain"
)

func TestScoreStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewScoreStore(client, time.Hour)
	ctx := context.Background()

	for _, entry := range []domain.LeaderboardEntry{
		{Name: "Alice", Score: 7, Time: 93.5},
		{Name: "Bob", Score: 21, Time: 260},
	} {
		if err := store.Add(ctx, entry); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if !mr.Exists(leaderboardKey) {
		t.Fatalf("expected redis key to be set")
	}

	top, err := store.Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 || top[0].Name != "Bob" || top[1].Name != "Alice" {
		t.Fatalf("unexpected leaderboard %+v", top)
	}
	if top[1].Time != 93.5 {
		t.Fatalf("fractional time lost: %+v", top[1])
	}
}

func TestScoreStoreLimits(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewScoreStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Add(ctx, domain.LeaderboardEntry{Name: "P", Score: i}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	top, err := store.Top(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 || top[0].Score != 4 {
		t.Fatalf("expected top 2 by score, got %+v", top)
	}
}
