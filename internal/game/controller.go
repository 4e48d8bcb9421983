package game

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trivia-gauntlet/internal/domain"
)

// DeckFetcher retrieves a question deck for a topic. An empty topic means
// general trivia with no category constraint.
type DeckFetcher interface {
	FetchDeck(ctx context.Context, topic string) (domain.Deck, error)
}

// ScoreSubmitter writes a finished run to the leaderboard.
type ScoreSubmitter interface {
	SubmitScore(ctx context.Context, sub domain.ScoreSubmission) error
}

// Scheduler runs a function after a delay on behalf of a game session.
// Cancel drops every pending task for the session; a new game cancels the
// old session so stale timers never fire into reset state.
type Scheduler interface {
	After(session uuid.UUID, d time.Duration, fn func())
	Cancel(session uuid.UUID)
}

// Snapshot is an immutable view of the game state handed to the
// presentation layer. Renderers observe snapshots; they never mutate.
type Snapshot struct {
	Session       uuid.UUID
	Phase         domain.Phase
	Score         int
	DeckPosition  int
	DeckSize      int
	Remaining     []string
	Question      *domain.QuestionItem
	LevelLabel    string
	CorrectAnswer string // revealed after a wrong answer
	CanSubmit     bool   // run ended at its score; score submission offered
	Submitted     bool
	Fetching      bool
	Failure       string // fetch/parse failure message, or a retryable submit error
}

// Controller owns all mutable game state and decides every phase
// transition. Events run to completion under a single lock; deck fetches
// and UX pauses are the only suspension points, and input arriving while
// one is in flight is rejected.
type Controller struct {
	decks  DeckFetcher
	scores ScoreSubmitter
	sched  Scheduler
	now    func() time.Time

	answerPause time.Duration
	levelPause  time.Duration
	fetchPause  time.Duration

	mu          sync.Mutex
	session     uuid.UUID
	phase       domain.Phase
	score       int
	deck        domain.Deck
	pos         int
	remaining   []string
	startedAt   time.Time
	label       string
	busy        bool
	canSubmit   bool
	submitted   bool
	correct     string
	failure     string
	subscribers map[chan Snapshot]struct{}
}

// New builds a controller with real timers and the wall clock.
func New(decks DeckFetcher, scores ScoreSubmitter) *Controller {
	return NewWithScheduler(decks, scores, newTimerScheduler(), time.Now)
}

// NewWithScheduler allows injecting the scheduler and clock for deterministic tests.
func NewWithScheduler(decks DeckFetcher, scores ScoreSubmitter, sched Scheduler, now func() time.Time) *Controller {
	return &Controller{
		decks:       decks,
		scores:      scores,
		sched:       sched,
		now:         now,
		answerPause: time.Second,
		levelPause:  2 * time.Second,
		fetchPause:  1500 * time.Millisecond,
		phase:       domain.PhaseIdle,
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

// SetPauses overrides the feedback and transition delays. The pauses are a
// UX affordance, not a correctness requirement.
func (c *Controller) SetPauses(answer, level, fetch time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answerPause = answer
	c.levelPause = level
	c.fetchPause = fetch
}

// StartGame resets every piece of state, cancels timers left over from a
// previous session and opens the topic prompt. Callable at any time.
func (c *Controller) StartGame() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != uuid.Nil {
		c.sched.Cancel(c.session)
	}
	c.session = uuid.New()
	c.phase = domain.PhaseAwaitingTopic
	c.score = 0
	c.deck = nil
	c.pos = 0
	c.remaining = append([]string(nil), domain.Categories...)
	c.startedAt = c.now()
	c.label = ""
	c.busy = false
	c.canSubmit = false
	c.submitted = false
	c.correct = ""
	c.failure = ""
	return c.broadcastLocked()
}

// SubmitTopic accepts the opening free-form topic and requests the first deck.
func (c *Controller) SubmitTopic(ctx context.Context, topic string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseAwaitingTopic || c.busy {
		return domain.ErrBusy
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.ErrInvalidInput
	}
	// A topic naming one of the fixed categories consumes it, the same as
	// picking it at a checkpoint would.
	for i, category := range c.remaining {
		if strings.EqualFold(category, topic) {
			c.remaining = append(c.remaining[:i], c.remaining[i+1:]...)
			break
		}
	}
	c.beginFetchLocked(ctx, topic, domain.FirstLevelLabel)
	return nil
}

// SelectCategory consumes one of the remaining categories and requests its
// deck. A chosen category never comes back within the same game.
func (c *Controller) SelectCategory(ctx context.Context, category string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseAwaitingCategory || c.busy {
		return domain.ErrBusy
	}
	idx := -1
	for i, remaining := range c.remaining {
		if remaining == category {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrInvalidCategory
	}
	c.remaining = append(c.remaining[:idx], c.remaining[idx+1:]...)
	c.beginFetchLocked(ctx, category, domain.LevelLabel(c.score))
	return nil
}

// AnswerQuestion scores the selected option against the current question.
// A correct pick bumps the score and schedules the next question after a
// short feedback pause; a wrong pick ends the run at the score reached and
// offers the leaderboard submission.
func (c *Controller) AnswerQuestion(selected string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseInRound || c.busy || c.pos >= len(c.deck) {
		return domain.ErrBusy
	}
	item := c.deck[c.pos]
	listed := false
	for _, opt := range item.Options {
		if opt == selected {
			listed = true
			break
		}
	}
	if !listed {
		return domain.ErrInvalidSelection
	}

	if selected != item.Answer {
		c.correct = item.Answer
		c.phase = domain.PhaseEnded
		c.canSubmit = true
		c.broadcastLocked()
		return nil
	}

	c.score++
	c.pos++
	c.busy = true
	session := c.session
	c.broadcastLocked()
	c.sched.After(session, c.answerPause, func() { c.advanceRound(session) })
	return nil
}

// SubmitScore sends the finished run to the leaderboard. On failure the
// state stays submittable so the player can retry.
func (c *Controller) SubmitScore(ctx context.Context, name string) error {
	c.mu.Lock()

	if c.phase != domain.PhaseEnded || !c.canSubmit {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	if strings.TrimSpace(name) == "" {
		c.mu.Unlock()
		return domain.ErrInvalidInput
	}

	sub := domain.ScoreSubmission{
		Name:  name,
		Score: c.score,
		Time:  c.now().Sub(c.startedAt).Seconds(),
	}
	session := c.session
	c.phase = domain.PhaseSubmittingScore
	c.failure = ""
	c.broadcastLocked()
	c.mu.Unlock()

	go func() {
		err := c.scores.SubmitScore(ctx, sub)

		c.mu.Lock()
		defer c.mu.Unlock()
		if session != c.session {
			return
		}
		c.phase = domain.PhaseEnded
		if err != nil {
			c.failure = err.Error()
		} else {
			c.canSubmit = false
			c.submitted = true
		}
		c.broadcastLocked()
	}()
	return nil
}

// Snapshot returns the current state for pull-based rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe returns a channel receiving a snapshot after every transition.
// The caller must invoke the returned cancel function to avoid leaks.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	initial := c.snapshotLocked()
	c.mu.Unlock()

	ch <- initial

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// beginFetchLocked kicks off the deck request. Exactly one fetch is in
// flight at a time; a reset session invalidates the result on arrival.
func (c *Controller) beginFetchLocked(ctx context.Context, topic, label string) {
	session := c.session
	c.busy = true
	c.label = label
	c.broadcastLocked()
	go func() {
		deck, err := c.decks.FetchDeck(ctx, topic)
		c.installDeck(session, deck, err)
	}()
}

func (c *Controller) installDeck(session uuid.UUID, deck domain.Deck, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if session != c.session {
		return
	}
	c.busy = false
	if err != nil {
		c.phase = domain.PhaseEnded
		c.canSubmit = false
		c.failure = err.Error()
		c.broadcastLocked()
		return
	}
	c.deck = deck
	c.pos = 0
	c.phase = domain.PhaseInRound
	c.broadcastLocked()
}

// advanceRound fires after the correct-answer pause. Mid-deck it simply
// surfaces the next question; at deck exhaustion it runs exactly one
// level-completion evaluation.
func (c *Controller) advanceRound(session uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if session != c.session {
		return
	}
	c.busy = false
	if c.pos < len(c.deck) {
		c.broadcastLocked()
		return
	}

	c.phase = domain.PhaseLevelTransition
	c.busy = true
	c.broadcastLocked()
	c.sched.After(session, c.levelPause, func() { c.applyLevelPolicy(session) })
}

func (c *Controller) applyLevelPolicy(session uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if session != c.session {
		return
	}
	c.busy = false

	switch domain.NextLevel(c.score, len(c.remaining)) {
	case domain.DecisionPromptCategory:
		c.phase = domain.PhaseAwaitingCategory
		c.broadcastLocked()
	case domain.DecisionFinalCategory:
		category := c.remaining[0]
		c.remaining = c.remaining[:0]
		c.scheduleFetchLocked(session, category, domain.FinalLevelLabel)
	case domain.DecisionGeneralTrivia:
		c.scheduleFetchLocked(session, "", domain.LevelLabel(c.score))
	default:
		c.broadcastLocked()
	}
}

// scheduleFetchLocked delays an automatic deck request so the transition
// banner has time to render.
func (c *Controller) scheduleFetchLocked(session uuid.UUID, topic, label string) {
	c.busy = true
	c.label = label
	c.broadcastLocked()
	c.sched.After(session, c.fetchPause, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if session != c.session {
			return
		}
		c.beginFetchLocked(context.Background(), topic, label)
	})
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Session:       c.session,
		Phase:         c.phase,
		Score:         c.score,
		DeckPosition:  c.pos,
		DeckSize:      len(c.deck),
		Remaining:     append([]string(nil), c.remaining...),
		LevelLabel:    c.label,
		CorrectAnswer: c.correct,
		CanSubmit:     c.canSubmit,
		Submitted:     c.submitted,
		Fetching:      c.busy,
		Failure:       c.failure,
	}
	if c.phase == domain.PhaseInRound && c.pos < len(c.deck) {
		q := c.deck[c.pos]
		s.Question = &q
	}
	return s
}

func (c *Controller) broadcastLocked() Snapshot {
	s := c.snapshotLocked()
	for ch := range c.subscribers {
		select {
		case ch <- s:
		default:
			// Drop the stale snapshot so a slow renderer never blocks the game.
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
	return s
}
