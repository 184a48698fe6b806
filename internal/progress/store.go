// Package progress owns the durable progress record: cumulative points,
// per-item statistics, badge unlocks and the day-based play streak. Every
// mutation is written through to a storage.KeyValue. Storage failures never
// reach the caller; the store keeps working in memory and reports the loss of
// durability through StorageAvailable.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wordgym/internal/badges"
	"wordgym/internal/models"
	"wordgym/internal/storage"
	"wordgym/internal/validation"
)

// DefaultKey is the storage key holding the whole progress record
const DefaultKey = "spellbee_progress"

// Store holds the progress record and persists it after every change
type Store struct {
	mu        sync.Mutex
	kv        storage.KeyValue
	key       string
	now       func() time.Time
	logger    zerolog.Logger
	progress  models.PersistedProgress
	available bool
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now. Day arithmetic uses the location of the returned time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the store logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store on kv and loads the record under key.
// An empty key selects DefaultKey.
func NewStore(kv storage.KeyValue, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		kv:     kv,
		key:    key,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Load reads the record from storage. An absent, foreign-version or invalid
// record is replaced with a fresh one. A valid record goes through the day
// transition check. When storage cannot be read the store keeps a fresh
// record in memory and never writes over what is stored.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	s.available = s.kv.Available()
	if !s.available {
		s.logger.Warn().Str("key", s.key).Msg("storage unavailable, progress will not be saved")
		s.progress = models.NewProgress(today)
		return
	}

	data, err := s.kv.Get(s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.progress = models.NewProgress(today)
		s.persist()
		return
	case err != nil:
		s.available = false
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to read progress, continuing in memory")
		s.progress = models.NewProgress(today)
		return
	}

	saved, err := decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("stored progress discarded")
		s.progress = models.NewProgress(today)
		s.persist()
		return
	}

	s.progress = saved
	if s.applyDayTransition(today) {
		s.persist()
	}
}

// decode parses and checks a stored record
func decode(data []byte) (models.PersistedProgress, error) {
	var p models.PersistedProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to decode progress: %w", err)
	}
	if p.Version != models.ProgressVersion {
		return p, fmt.Errorf("unsupported progress version %d", p.Version)
	}
	normalize(&p)
	if err := validation.ValidateProgress(p); err != nil {
		return p, err
	}
	return p, nil
}

// applyDayTransition updates the play-day counter and reports whether anything changed
func (s *Store) applyDayTransition(today string) bool {
	last := s.progress.LastPlayedDate
	switch {
	case last == "":
		s.progress.ConsecutiveDays = 1
	case last == today:
		return false
	case daysBetween(last, today, s.now().Location()) == 1:
		s.progress.ConsecutiveDays++
	default:
		s.progress.ConsecutiveDays = 1
	}
	s.progress.LastPlayedDate = today
	return true
}

// daysBetween counts calendar days from a to b. Unparseable dates count as a gap.
func daysBetween(a, b string, loc *time.Location) int {
	from, err := time.ParseInLocation(models.DateLayout, a, loc)
	if err != nil {
		return -1
	}
	to, err := time.ParseInLocation(models.DateLayout, b, loc)
	if err != nil {
		return -1
	}
	// calendar dates are compared at UTC midnight so DST shifts cannot skew the count
	fromUTC := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC) / (24 * time.Hour))
}

func normalize(p *models.PersistedProgress) {
	if p.Badges == nil {
		p.Badges = []string{}
	}
	if p.WordStats == nil {
		p.WordStats = map[string]models.WordStats{}
	}
}

func (s *Store) today() string {
	return s.now().Format(models.DateLayout)
}

// persist writes the record. A failed write switches the store to memory only.
func (s *Store) persist() {
	if !s.available {
		return
	}
	if err := storage.SetJSON(s.kv, s.key, s.progress); err != nil {
		s.available = false
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to save progress, continuing in memory")
	}
}

// StorageAvailable reports whether changes are still being persisted
func (s *Store) StorageAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Snapshot returns a copy of the current record
func (s *Store) Snapshot() models.PersistedProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Clone()
}

// AddPoints adds n to the cumulative total
func (s *Store) AddPoints(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.TotalPoints += n
	s.persist()
}

// RecordItemAttempt updates the statistics of one item. A correct answer also
// counts towards the words-completed total.
func (s *Store) RecordItemAttempt(itemID string, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.progress.WordStats[itemID]
	stats.Attempts++
	if correct {
		stats.Correct++
		s.progress.WordsCompleted++
	}
	stats.LastPlayed = s.today()
	s.progress.WordStats[itemID] = stats
	s.persist()
}

// IncrementRoundsPlayed counts a finished round and stamps today as the last play date
func (s *Store) IncrementRoundsPlayed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.RoundsPlayed++
	s.progress.LastPlayedDate = s.today()
	s.persist()
}

// UpdateStreak extends the cross-round answer streak or breaks it
func (s *Store) UpdateStreak(correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if correct {
		s.progress.CurrentStreak++
		s.progress.LongestStreak = max(s.progress.LongestStreak, s.progress.CurrentStreak)
	} else {
		s.progress.CurrentStreak = 0
	}
	s.persist()
}

// ResetCurrentStreak zeroes the current streak and keeps the longest one
func (s *Store) ResetCurrentStreak() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.CurrentStreak = 0
	s.persist()
}

// CheckAndAwardBadges unlocks every badge whose condition now holds and
// returns the ones unlocked by this call. stats may be nil.
func (s *Store) CheckAndAwardBadges(stats *models.RoundStats) []models.Badge {
	s.mu.Lock()
	defer s.mu.Unlock()

	earned := badges.CheckNewlyEarned(s.progress, stats)
	if len(earned) == 0 {
		return nil
	}
	for _, b := range earned {
		s.progress.Badges = append(s.progress.Badges, b.ID)
		s.logger.Info().Str("badge", b.ID).Msg("badge unlocked")
	}
	s.persist()
	return earned
}

// Clear deletes the stored record and starts over from a fresh one
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.available {
		if err := s.kv.Remove(s.key); err != nil {
			s.available = false
			s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to remove progress, continuing in memory")
		}
	}
	s.progress = models.NewProgress(s.today())
	s.persist()
}
