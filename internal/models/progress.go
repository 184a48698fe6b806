package models

// ProgressVersion is the schema version of the persisted progress record
const ProgressVersion = 1

// DateLayout is the calendar date format used in persisted progress
const DateLayout = "2006-01-02"

// WordStats holds per-item answer statistics
type WordStats struct {
	Attempts   int    `json:"attempts"`
	Correct    int    `json:"correct"`
	LastPlayed string `json:"lastPlayed"`
}

// PersistedProgress is the durable cross-session progress record
type PersistedProgress struct {
	Version         int                  `json:"version"`
	TotalPoints     int                  `json:"totalPoints"`
	WordsCompleted  int                  `json:"wordsCompleted"`
	RoundsPlayed    int                  `json:"roundsPlayed"`
	Badges          []string             `json:"badges"`
	WordStats       map[string]WordStats `json:"wordStats"`
	LastPlayedDate  string               `json:"lastPlayedDate"`
	CurrentStreak   int                  `json:"currentStreak"`
	LongestStreak   int                  `json:"longestStreak"`
	ConsecutiveDays int                  `json:"consecutiveDays"`
}

// NewProgress returns a fresh record stamped with the given date
func NewProgress(today string) PersistedProgress {
	return PersistedProgress{
		Version:         ProgressVersion,
		Badges:          []string{},
		WordStats:       map[string]WordStats{},
		LastPlayedDate:  today,
		ConsecutiveDays: 1,
	}
}

// HasBadge reports whether the badge id is already unlocked
func (p PersistedProgress) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate store internals
func (p PersistedProgress) Clone() PersistedProgress {
	c := p
	c.Badges = append([]string{}, p.Badges...)
	c.WordStats = make(map[string]WordStats, len(p.WordStats))
	for k, v := range p.WordStats {
		c.WordStats[k] = v
	}
	return c
}
