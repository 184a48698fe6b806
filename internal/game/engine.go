// Package game implements the round engine: a single playthrough of ten quiz
// items with attempt tracking, a two-attempt retry policy, points and streaks.
//
// State transitions:
//   - Idle → InProgress on StartRound.
//   - InProgress → Complete when Advance moves past the last item.
//   - Complete or InProgress → InProgress on another StartRound.
//   - any state → Idle on ResetRound.
//
// An Engine is not safe for concurrent use; it is driven by one player.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wordgym/internal/models"
	"wordgym/internal/scoring"
)

const (
	// RoundSize is the number of items in every round
	RoundSize = 10
	// MaxAttempts is how many submissions an item allows before it is revealed
	MaxAttempts = 2
)

var (
	// ErrInsufficientItems is returned when a mode's pool cannot fill a round
	ErrInsufficientItems = errors.New("not enough items for a round")
	// ErrUnknownMode is returned for a game mode the engine does not know
	ErrUnknownMode = errors.New("unknown game mode")
)

var optionPrefixes = []string{"a", "b", "c"}

// State is the lifecycle state of the engine
type State int

const (
	// StateIdle means no round has been started or the last one was reset
	StateIdle State = iota
	// StateInProgress means items are being answered
	StateInProgress
	// StateComplete means every item was passed and the round awaits EndRound
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in-progress"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// ItemSource supplies the eligible pool for a game mode
type ItemSource interface {
	EligibleItems(mode models.GameMode) []models.QuizItem
}

// Round is the ephemeral state of one playthrough
type Round struct {
	ID        uuid.UUID
	Mode      models.GameMode
	Items     []models.QuizItem
	Position  int
	Attempts  []int
	Resolved  []bool
	Score     int
	Points    int
	Streak    int
	MaxStreak int
}

// Engine drives rounds
type Engine struct {
	source  ItemSource
	rng     *rand.Rand
	logger  zerolog.Logger
	state   State
	round   *Round
	options []models.Option
}

// Option configures an Engine
type Option func(*Engine)

// WithRand makes item selection and option order use r. Tests pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the engine logger
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an idle engine drawing items from source
func NewEngine(source ItemSource, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		logger: zerolog.Nop(),
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartRound selects RoundSize distinct items for mode and begins a new round.
// A pool smaller than RoundSize is rejected and the engine is left untouched.
func (e *Engine) StartRound(mode models.GameMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	pool := e.source.EligibleItems(mode)
	if len(pool) < RoundSize {
		return fmt.Errorf("%w: mode %s has %d eligible items, need %d", ErrInsufficientItems, mode, len(pool), RoundSize)
	}

	e.round = &Round{
		ID:       uuid.New(),
		Mode:     mode,
		Items:    e.sample(pool, RoundSize),
		Attempts: make([]int, RoundSize),
		Resolved: make([]bool, RoundSize),
	}
	e.state = StateInProgress
	e.prepareOptions()

	e.logger.Debug().
		Str("round_id", e.round.ID.String()).
		Str("mode", string(mode)).
		Int("pool", len(pool)).
		Msg("round started")
	return nil
}

// SubmitAnswer scores an answer for the current item. Outside a round in
// progress, or once the current item is resolved and waiting for Advance, it
// returns a zero result and changes nothing.
func (e *Engine) SubmitAnswer(answer string) models.SubmitResult {
	if e.state != StateInProgress {
		return models.SubmitResult{}
	}

	r := e.round
	if r.Resolved[r.Position] || r.Attempts[r.Position] >= MaxAttempts {
		return models.SubmitResult{}
	}
	item := r.Items[r.Position]
	expected := item.ExpectedAnswer(r.Mode)

	r.Attempts[r.Position]++
	attempt := r.Attempts[r.Position]

	result := models.SubmitResult{
		AttemptNumber: attempt,
		CorrectAnswer: expected,
	}

	if scoring.IsAnswerCorrect(answer, expected) {
		result.Correct = true
		result.PointsEarned = scoring.PointsForAttempt(attempt)
		result.ShouldAdvance = true

		r.Score++
		r.Points += result.PointsEarned
		r.Streak++
		if r.Streak > r.MaxStreak {
			r.MaxStreak = r.Streak
		}
	} else {
		r.Streak = 0
		result.ShouldAdvance = attempt >= MaxAttempts
	}
	r.Resolved[r.Position] = result.ShouldAdvance

	return result
}

// Advance moves to the next item. Moving past the last item completes the round.
func (e *Engine) Advance() {
	if e.state != StateInProgress {
		return
	}

	e.round.Position++
	if e.round.Position >= len(e.round.Items) {
		e.state = StateComplete
		e.options = nil
		e.logger.Debug().
			Str("round_id", e.round.ID.String()).
			Int("score", e.round.Score).
			Int("points", e.round.Points).
			Msg("round complete")
		return
	}
	e.prepareOptions()
}

// EndRound returns the statistics of the answers applied so far. It is meant
// for a complete round but tolerates a round still in progress.
func (e *Engine) EndRound() models.RoundStats {
	if e.round == nil {
		return models.RoundStats{}
	}
	return models.RoundStats{
		Score:        e.round.Score,
		MaxStreak:    e.round.MaxStreak,
		PerfectRound: e.round.Score == RoundSize,
	}
}

// ResetRound discards the round and returns to idle
func (e *Engine) ResetRound() {
	e.round = nil
	e.options = nil
	e.state = StateIdle
}

// State reports the lifecycle state
func (e *Engine) State() State {
	return e.state
}

// IsComplete reports whether every item of the round has been passed
func (e *Engine) IsComplete() bool {
	return e.state == StateComplete
}

// Mode returns the mode of the current round, or "" when idle
func (e *Engine) Mode() models.GameMode {
	if e.round == nil {
		return ""
	}
	return e.round.Mode
}

// RoundID returns the id of the current round
func (e *Engine) RoundID() uuid.UUID {
	if e.round == nil {
		return uuid.Nil
	}
	return e.round.ID
}

// CurrentItem returns the item being answered
func (e *Engine) CurrentItem() (models.QuizItem, bool) {
	if e.state != StateInProgress {
		return models.QuizItem{}, false
	}
	return e.round.Items[e.round.Position], true
}

// Items returns a copy of the selected items in play order
func (e *Engine) Items() []models.QuizItem {
	if e.round == nil {
		return nil
	}
	return append([]models.QuizItem(nil), e.round.Items...)
}

// Progress returns the display view of the round
func (e *Engine) Progress() models.RoundProgress {
	if e.round == nil {
		return models.RoundProgress{Total: RoundSize}
	}
	return models.RoundProgress{
		Current: e.round.Position + 1,
		Total:   RoundSize,
		Score:   e.round.Score,
		Points:  e.round.Points,
	}
}

// CurrentAttempts returns the number of submissions made for the current item
func (e *Engine) CurrentAttempts() int {
	if e.state != StateInProgress {
		return 0
	}
	return e.round.Attempts[e.round.Position]
}

// Streak returns the running count of consecutive correct answers
func (e *Engine) Streak() int {
	if e.round == nil {
		return 0
	}
	return e.round.Streak
}

// MaxStreak returns the longest streak of the round so far
func (e *Engine) MaxStreak() int {
	if e.round == nil {
		return 0
	}
	return e.round.MaxStreak
}

// Options returns the shuffled multiple-choice answers for the current item.
// Typed modes have no options.
func (e *Engine) Options() []models.Option {
	return append([]models.Option(nil), e.options...)
}

func (e *Engine) prepareOptions() {
	e.options = nil
	if e.round.Mode == models.ModeListenSpell {
		return
	}

	item := e.round.Items[e.round.Position]
	values := append([]string{item.ExpectedAnswer(e.round.Mode)}, item.Distractors(e.round.Mode)...)
	e.shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	e.options = make([]models.Option, len(values))
	for i, v := range values {
		prefix := fmt.Sprint(i + 1)
		if i < len(optionPrefixes) {
			prefix = optionPrefixes[i]
		}
		e.options[i] = models.Option{Prefix: prefix, Value: v}
	}
}

// sample draws n distinct items with a partial Fisher-Yates shuffle of a copy
func (e *Engine) sample(pool []models.QuizItem, n int) []models.QuizItem {
	items := append([]models.QuizItem(nil), pool...)
	for i := 0; i < n; i++ {
		j := i + e.intN(len(items)-i)
		items[i], items[j] = items[j], items[i]
	}
	return items[:n]
}

func (e *Engine) shuffle(n int, swap func(i, j int)) {
	if e.rng != nil {
		e.rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

func (e *Engine) intN(n int) int {
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return rand.IntN(n)
}
