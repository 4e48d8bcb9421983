package domain

import "sort"

// QuestionItem is a single multiple-choice question inside a deck.
// The generation service guarantees that Answer equals exactly one
// element of Options; the parser rejects decks whose shape is malformed
// but does not re-check answer membership.
type QuestionItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Deck is one ordered round of questions, replaced wholesale on every fetch.
type Deck []QuestionItem

// Categories is the fixed rotation offered at the 10/20/30 checkpoints.
// Each category may be chosen at most once per game.
var Categories = []string{"Sports", "Movies", "History", "Science"}

// LeaderboardEntry is one row of the public leaderboard. Time is the
// elapsed game duration in seconds, fractional.
type LeaderboardEntry struct {
	Name  string  `json:"name"`
	Score int     `json:"score"`
	Time  float64 `json:"time"`
}

// ScoreSubmission is the payload a finished game sends to the leaderboard.
type ScoreSubmission struct {
	Name  string  `json:"name"`
	Score int     `json:"score"`
	Time  float64 `json:"time"`
}

// SortLeaderboard orders entries the way the service publishes them:
// score descending, then the faster run, then name.
func SortLeaderboard(entries []LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Time != entries[j].Time {
			return entries[i].Time < entries[j].Time
		}
		return entries[i].Name < entries[j].Name
	})
}
