package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trivia-gauntlet/internal/domain"
)

func TestStaticGeneratorServesTopicAndFallback(t *testing.T) {
	sports := domain.Deck{{Question: "Q1", Options: []string{"A", "B"}, Answer: "A"}}
	general := domain.Deck{{Question: "G1", Options: []string{"X", "Y"}, Answer: "Y"}}
	g := NewStaticGenerator(map[string]domain.Deck{"Sports": sports}, general)

	raw, err := g.GenerateDeck(context.Background(), "sports")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var deck domain.Deck
	if err := json.Unmarshal([]byte(raw), &deck); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if deck[0].Question != "Q1" {
		t.Fatalf("expected sports deck, got %+v", deck)
	}

	raw, err = g.GenerateDeck(context.Background(), "")
	if err != nil {
		t.Fatalf("generate general: %v", err)
	}
	if !strings.Contains(raw, "G1") {
		t.Fatalf("expected general deck, got %s", raw)
	}
}

func TestGeminiGeneratorReturnsModelTextVerbatim(t *testing.T) {
	fenced := "```json\n[{\"question\":\"Q\",\"options\":[\"A\",\"B\"],\"answer\":\"A\"}]\n```"
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key")
		}
		var req geminiRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Contents[0].Parts[0].Text
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": fenced}}}},
			},
		})
	}))
	defer server.Close()

	g := NewGeminiGenerator(server.URL, "", "test-key")
	raw, err := g.GenerateDeck(context.Background(), "History")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw != fenced {
		t.Fatalf("model text must pass through untouched, got %q", raw)
	}
	if !strings.Contains(gotPrompt, "about this topic: History") {
		t.Fatalf("prompt missing topic, got %q", gotPrompt)
	}
}

func TestGeminiGeneratorWithoutKey(t *testing.T) {
	g := NewGeminiGenerator("", "", "")
	if _, err := g.GenerateDeck(context.Background(), "Sports"); err == nil {
		t.Fatalf("expected error without api key")
	}
}
