package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"trivia-gauntlet/internal/domain"
)

// StaticGenerator serves canned decks keyed by topic, with a fallback deck
// for unknown topics and general trivia. Useful for demos and tests when
// no model backend is configured.
type StaticGenerator struct {
	decks   map[string]domain.Deck
	general domain.Deck
}

func NewStaticGenerator(decks map[string]domain.Deck, general domain.Deck) *StaticGenerator {
	normalized := make(map[string]domain.Deck, len(decks))
	for topic, deck := range decks {
		normalized[strings.ToLower(topic)] = deck
	}
	return &StaticGenerator{decks: normalized, general: general}
}

func (g *StaticGenerator) GenerateDeck(_ context.Context, topic string) (string, error) {
	deck, ok := g.decks[strings.ToLower(strings.TrimSpace(topic))]
	if !ok {
		deck = g.general
	}
	if len(deck) == 0 {
		return "", fmt.Errorf("no deck available for topic %q", topic)
	}
	data, err := json.Marshal(deck)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
