// Package leaderboard is the HTTP client for the score service.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trivia-gauntlet/internal/domain"
)

// Client talks to POST {base}/api/submit-score and GET {base}/api/leaderboard.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SubmitScore records a finished run. Failures are retryable; the caller
// keeps its submission state.
func (c *Client) SubmitScore(ctx context.Context, sub domain.ScoreSubmission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submit-score", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrScoreSubmit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil && payload.Error != "" {
			return fmt.Errorf("%w: %s", domain.ErrScoreSubmit, payload.Error)
		}
		return fmt.Errorf("%w: unexpected status %d", domain.ErrScoreSubmit, resp.StatusCode)
	}
	return nil
}

// Top returns the leaderboard in the order the service sends it; the
// client never re-sorts.
func (c *Client) Top(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/leaderboard", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard fetch: unexpected status %d", resp.StatusCode)
	}
	var entries []domain.LeaderboardEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("leaderboard fetch: %w", err)
	}
	return entries, nil
}
