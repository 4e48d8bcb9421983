package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"trivia-gauntlet/internal/app"
	"trivia-gauntlet/internal/domain"
	"trivia-gauntlet/internal/generate"
	"trivia-gauntlet/internal/infra/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.ScoreService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scores := app.NewScoreService(memory.NewScoreStore(), 10)
	generator := generate.NewStaticGenerator(map[string]domain.Deck{
		"Sports": {{Question: "S1", Options: []string{"A", "B"}, Answer: "A"}},
	}, domain.Deck{{Question: "G1", Options: []string{"X", "Y"}, Answer: "Y"}})

	r := chi.NewRouter()
	addRoutes(r, logger, scores, generator, "")
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, scores
}

func TestGenerateQuizEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/generate-quiz", "application/json", bytes.NewBufferString(`{"topic":"Sports"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		QuizData string `json:"quiz_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var deck domain.Deck
	if err := json.Unmarshal([]byte(payload.QuizData), &deck); err != nil {
		t.Fatalf("quiz_data not a deck: %v", err)
	}
	if deck[0].Question != "S1" {
		t.Fatalf("expected sports deck, got %+v", deck)
	}
}

func TestGenerateQuizAcceptsEmptyBody(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/generate-quiz", "application/json", bytes.NewBufferString(`{}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for general trivia, got %d", resp.StatusCode)
	}
}

func TestSubmitScoreAndLeaderboard(t *testing.T) {
	server, _ := newTestServer(t)

	body, _ := json.Marshal(domain.ScoreSubmission{Name: "Alice", Score: 7, Time: 93.5})
	resp, err := http.Post(server.URL+"/api/submit-score", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/api/leaderboard")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var entries []domain.LeaderboardEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Alice" || entries[0].Time != 93.5 {
		t.Fatalf("unexpected leaderboard %+v", entries)
	}
}

func TestSubmitScoreRejectsEmptyName(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/submit-score", "application/json", bytes.NewBufferString(`{"name":"","score":3,"time":10}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLeaderboardFeedStreamsUpdates(t *testing.T) {
	server, scores := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws/leaderboard"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot is empty.
	var snapshot []domain.LeaderboardEntry
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if len(snapshot) != 0 {
		t.Fatalf("expected empty initial snapshot, got %+v", snapshot)
	}

	if err := scores.Submit(context.Background(), domain.ScoreSubmission{Name: "Bob", Score: 21, Time: 260}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if len(snapshot) != 1 || snapshot[0].Name != "Bob" {
		t.Fatalf("expected Bob update, got %+v", snapshot)
	}
}
