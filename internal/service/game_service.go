package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wordgym/internal/game"
	"wordgym/internal/models"
	"wordgym/internal/progress"
	"wordgym/internal/scoring"
)

var (
	// ErrNoActiveRound is returned when a round operation needs a round and none was started
	ErrNoActiveRound = errors.New("no active round")
	// ErrRoundNotFinished is returned when a round is completed before its last item was passed
	ErrRoundNotFinished = errors.New("round not finished")
)

// RoundSummary is what the player sees when a round is finished
type RoundSummary struct {
	RoundID     uuid.UUID         `json:"roundId"`
	Mode        models.GameMode   `json:"mode"`
	Stats       models.RoundStats `json:"stats"`
	RoundPoints int               `json:"roundPoints"`
	TotalPoints int               `json:"totalPoints"`
	Tier        scoring.Tier      `json:"tier"`
	NewBadges   []models.Badge    `json:"newBadges"`
}

// GameService handles a play session: it drives the round engine and feeds
// every answer and finished round into the progress store
type GameService struct {
	engine   *game.Engine
	progress *progress.Store
	logger   zerolog.Logger

	// the last summary is kept so finishing the same round twice is not counted twice
	last *RoundSummary
}

// NewGameService creates a new game service
func NewGameService(engine *game.Engine, store *progress.Store, logger zerolog.Logger) *GameService {
	return &GameService{
		engine:   engine,
		progress: store,
		logger:   logger,
	}
}

// Engine returns the round engine for read-only views
func (s *GameService) Engine() *game.Engine {
	return s.engine
}

// Progress returns the progress store
func (s *GameService) Progress() *progress.Store {
	return s.progress
}

// StartGame starts a round in mode. The persistent current streak starts over
// with every round; the longest streak is kept.
func (s *GameService) StartGame(mode models.GameMode) error {
	if err := s.engine.StartRound(mode); err != nil {
		return err
	}
	s.progress.ResetCurrentStreak()
	s.logger.Info().
		Str("round_id", s.engine.RoundID().String()).
		Str("mode", string(mode)).
		Msg("game started")
	return nil
}

// SubmitAnswer scores an answer for the current item and records it in progress.
// Lexical items also update their per-word statistics. A submission the engine
// rejects is not recorded.
func (s *GameService) SubmitAnswer(answer string) models.SubmitResult {
	item, ok := s.engine.CurrentItem()
	if !ok {
		return models.SubmitResult{}
	}

	result := s.engine.SubmitAnswer(answer)
	if result.AttemptNumber == 0 {
		return result
	}
	if item.Kind == models.KindLexical {
		s.progress.RecordItemAttempt(item.ID(), result.Correct)
	}
	s.progress.UpdateStreak(result.Correct)
	return result
}

// Advance moves to the next item
func (s *GameService) Advance() {
	s.engine.Advance()
}

// CompleteRound closes the round: the round total with bonuses is added to
// progress, the round is counted and badges are checked. Completing the same
// round again returns the first summary without touching progress. A round
// still in progress is rejected with ErrRoundNotFinished.
func (s *GameService) CompleteRound() (*RoundSummary, error) {
	switch s.engine.State() {
	case game.StateIdle:
		return nil, ErrNoActiveRound
	case game.StateInProgress:
		return nil, ErrRoundNotFinished
	}
	if s.last != nil && s.last.RoundID == s.engine.RoundID() {
		return s.last, nil
	}

	stats := s.engine.EndRound()
	roundPoints := s.engine.Progress().Points
	total := scoring.RoundTotal(stats.Score, roundPoints)

	s.progress.AddPoints(total)
	s.progress.IncrementRoundsPlayed()
	newBadges := s.progress.CheckAndAwardBadges(&stats)

	summary := &RoundSummary{
		RoundID:     s.engine.RoundID(),
		Mode:        s.engine.Mode(),
		Stats:       stats,
		RoundPoints: roundPoints,
		TotalPoints: total,
		Tier:        scoring.ScoreTier(stats.Score),
		NewBadges:   newBadges,
	}
	s.last = summary

	s.logger.Info().
		Str("round_id", summary.RoundID.String()).
		Int("score", stats.Score).
		Int("points", total).
		Bool("perfect", stats.PerfectRound).
		Int("new_badges", len(newBadges)).
		Msg("round completed")
	return summary, nil
}

// PlayAgain starts a new round in the mode just played
func (s *GameService) PlayAgain() error {
	mode := s.engine.Mode()
	if mode == "" {
		return ErrNoActiveRound
	}
	return s.StartGame(mode)
}

// GoHome abandons the current round
func (s *GameService) GoHome() {
	s.engine.ResetRound()
}
