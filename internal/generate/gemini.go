package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultGeminiURL is the REST endpoint of the generation backend.
const DefaultGeminiURL = "https://generativelanguage.googleapis.com"

// DefaultGeminiModel is used when the config names none.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiGenerator asks a Gemini model for a ten-question deck and returns
// the model text untouched. The model is told to answer with a bare JSON
// array, but it sometimes wraps it in code fences anyway.
type GeminiGenerator struct {
	baseURL string
	model   string
	apiKey  string
	httpc   *http.Client
}

func NewGeminiGenerator(baseURL, model, apiKey string) *GeminiGenerator {
	if baseURL == "" {
		baseURL = DefaultGeminiURL
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 90 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiGenerator) GenerateDeck(ctx context.Context, topic string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: deckPrompt(topic)}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("generation response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return "", fmt.Errorf("generation backend: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("generation backend: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generation backend: empty response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func deckPrompt(topic string) string {
	topicString := "of random general knowledge trivia"
	if topic != "" {
		topicString = fmt.Sprintf("about this topic: %s", topic)
	}
	return fmt.Sprintf(`Generate 10 multiple-choice quiz questions %s.
Respond ONLY with a valid JSON array. Do not include any other text.
Each object in the array should have:
- "question": The question text.
- "options": An array of 4 strings (the potential answers).
- "answer": The string of the *correct* answer from the options list.`, topicString)
}
