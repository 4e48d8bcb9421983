package domain

// Phase is the current stage of a game session.
type Phase string

const (
	PhaseIdle             Phase = "IDLE"              // No game running yet
	PhaseAwaitingTopic    Phase = "AWAITING_TOPIC"    // Player types the opening topic
	PhaseAwaitingCategory Phase = "AWAITING_CATEGORY" // Player picks from the remaining categories
	PhaseInRound          Phase = "IN_ROUND"          // Questions being answered
	PhaseLevelTransition  Phase = "LEVEL_TRANSITION"  // Deck exhausted, next step being decided
	PhaseSubmittingScore  Phase = "SUBMITTING_SCORE"  // Leaderboard write in flight
	PhaseEnded            Phase = "ENDED"             // Run over, by wrong answer or by failure
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}
