// Package quizgen is the HTTP client for the quiz generation service.
package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-gauntlet/internal/domain"
)

// Client fetches question decks from POST {base}/api/generate-quiz.
// Duplicate in-flight requests for the same topic are collapsed into one
// upstream call.
type Client struct {
	baseURL string
	httpc   *http.Client
	sf      singleflight.Group
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Topic string `json:"topic,omitempty"`
}

type generateResponse struct {
	QuizData string `json:"quiz_data"`
	Error    string `json:"error"`
}

// FetchDeck requests a deck for the topic; an empty topic asks for general
// trivia with no category constraint.
func (c *Client) FetchDeck(ctx context.Context, topic string) (domain.Deck, error) {
	result, err, _ := c.sf.Do(topic, func() (interface{}, error) {
		return c.fetch(ctx, topic)
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.Deck), nil
}

func (c *Client) fetch(ctx context.Context, topic string) (domain.Deck, error) {
	body, err := json.Marshal(generateRequest{Topic: topic})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-quiz", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeckFetch, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeckFetch, err)
	}

	var payload generateResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrDeckFetch, payload.Error)
		}
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrDeckFetch, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeckParse, err)
	}
	return ParseDeck(payload.QuizData)
}

// ParseDeck turns the service's textual payload into a deck. The text may
// be wrapped in ```json fences, which are stripped before parsing.
func ParseDeck(raw string) (domain.Deck, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var deck domain.Deck
	if err := json.Unmarshal([]byte(cleaned), &deck); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeckParse, err)
	}
	if len(deck) == 0 {
		return nil, fmt.Errorf("%w: empty deck", domain.ErrDeckParse)
	}
	return deck, nil
}
