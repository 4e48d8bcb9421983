package domain

import "fmt"

// LevelDecision is what happens after a deck has been cleared.
type LevelDecision int

const (
	// DecisionContinue means the current deck still has questions; nothing to do.
	DecisionContinue LevelDecision = iota
	// DecisionPromptCategory asks the player to pick one of the remaining categories.
	DecisionPromptCategory
	// DecisionFinalCategory auto-selects the single remaining category for the final specialist round.
	DecisionFinalCategory
	// DecisionGeneralTrivia requests a deck with no category constraint.
	DecisionGeneralTrivia
)

// FirstLevelLabel names the opening round requested from the free-form topic.
const FirstLevelLabel = "Level 1 (1-10)"

// FinalLevelLabel names the auto-selected specialist round at score 40.
const FinalLevelLabel = "Final Level (41-50)"

// LevelLabel names the score range the next deck covers.
func LevelLabel(score int) string {
	return fmt.Sprintf("Level %d-%d", score+1, score+10)
}

// NextLevel decides the phase that follows a cleared deck. It is a pure
// function of the score and the number of categories still unplayed.
// Score 10/20/30 prompts for a category, 40 auto-selects the last one,
// 50 and beyond switches to general trivia. A score of 40 normally leaves
// exactly one category; zero or several remaining are still decided
// explicitly rather than assumed away.
func NextLevel(score, remainingCategories int) LevelDecision {
	switch {
	case score >= 50:
		return DecisionGeneralTrivia
	case score == 40:
		switch {
		case remainingCategories == 1:
			return DecisionFinalCategory
		case remainingCategories == 0:
			return DecisionGeneralTrivia
		default:
			return DecisionPromptCategory
		}
	case score == 10 || score == 20 || score == 30:
		if remainingCategories == 0 {
			return DecisionGeneralTrivia
		}
		return DecisionPromptCategory
	default:
		return DecisionContinue
	}
}
