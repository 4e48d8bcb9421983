package domain

import "errors"

var (
	// ErrInvalidInput is returned for an empty topic or player name. Recoverable: re-prompt.
	ErrInvalidInput = errors.New("input must not be empty")
	// ErrInvalidCategory is returned when a chosen category is not among the remaining ones.
	ErrInvalidCategory = errors.New("category not available")
	// ErrInvalidSelection is returned when an answer is not one of the question's options.
	ErrInvalidSelection = errors.New("selection is not one of the options")
	// ErrDeckFetch indicates the quiz generation service reported a failure. Ends the game.
	ErrDeckFetch = errors.New("deck fetch failed")
	// ErrDeckParse indicates the service payload did not parse into a question deck. Ends the game.
	ErrDeckParse = errors.New("deck payload is malformed")
	// ErrScoreSubmit indicates the leaderboard write failed. The submission stays retryable.
	ErrScoreSubmit = errors.New("score submission failed")
	// ErrBusy is returned when input arrives while a fetch or scheduled transition is in flight.
	ErrBusy = errors.New("operation already in flight")
)
