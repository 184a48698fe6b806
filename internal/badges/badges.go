// Package badges holds the achievement catalog and decides which badges a
// player has newly earned.
package badges

import "wordgym/internal/models"

// Badge ids as stored in progress
const (
	FirstRound       = "first-round"
	TenRounds        = "ten-rounds"
	PerfectRound     = "perfect-round"
	HundredWords     = "hundred-words"
	StreakFive       = "streak-five"
	FiveHundredWords = "five-hundred-words"
	DailyHabit       = "daily-habit"
)

// Catalog lists every badge in declaration order
var Catalog = []models.Badge{
	{
		ID:          FirstRound,
		Name:        "Prvi korak",
		Description: "Zaključi svojo prvo igro",
		Icon:        "star",
		Condition: func(p models.PersistedProgress, _ *models.RoundStats) bool {
			return p.RoundsPlayed >= 1
		},
	},
	{
		ID:          TenRounds,
		Name:        "Vztrajnost",
		Description: "Zaključi 10 iger",
		Icon:        "trophy",
		Condition: func(p models.PersistedProgress, _ *models.RoundStats) bool {
			return p.RoundsPlayed >= 10
		},
	},
	{
		ID:          PerfectRound,
		Name:        "Popolno!",
		Description: "Doseži 10/10 v eni igri",
		Icon:        "crown",
		Condition: func(_ models.PersistedProgress, s *models.RoundStats) bool {
			return s != nil && s.PerfectRound
		},
	},
	{
		ID:          HundredWords,
		Name:        "Besedni zaklad",
		Description: "Pravilno črkuj 100 besed",
		Icon:        "book",
		Condition: func(p models.PersistedProgress, _ *models.RoundStats) bool {
			return p.WordsCompleted >= 100
		},
	},
	{
		ID:          StreakFive,
		Name:        "Vroča roka",
		Description: "5 pravilnih odgovorov zapored",
		Icon:        "fire",
		Condition: func(p models.PersistedProgress, s *models.RoundStats) bool {
			return p.LongestStreak >= 5 || (s != nil && s.MaxStreak >= 5)
		},
	},
	{
		ID:          FiveHundredWords,
		Name:        "Mojster črkovanja",
		Description: "Pravilno črkuj 500 besed",
		Icon:        "medal",
		Condition: func(p models.PersistedProgress, _ *models.RoundStats) bool {
			return p.WordsCompleted >= 500
		},
	},
	{
		ID:          DailyHabit,
		Name:        "Dnevna navada",
		Description: "Igraj 7 dni zapored",
		Icon:        "calendar",
		Condition: func(p models.PersistedProgress, _ *models.RoundStats) bool {
			return p.ConsecutiveDays >= 7
		},
	},
}

// CheckNewlyEarned returns badges not yet unlocked in progress whose condition
// now holds. stats may be nil when no round has just finished.
func CheckNewlyEarned(progress models.PersistedProgress, stats *models.RoundStats) []models.Badge {
	var earned []models.Badge
	for _, b := range Catalog {
		if progress.HasBadge(b.ID) {
			continue
		}
		if b.Condition(progress, stats) {
			earned = append(earned, b)
		}
	}
	return earned
}

// ByID looks up a badge in the catalog
func ByID(id string) (models.Badge, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}

// Earned returns the unlocked badges in catalog order
func Earned(progress models.PersistedProgress) []models.Badge {
	var out []models.Badge
	for _, b := range Catalog {
		if progress.HasBadge(b.ID) {
			out = append(out, b)
		}
	}
	return out
}

// Locked returns the badges still to unlock in catalog order
func Locked(progress models.PersistedProgress) []models.Badge {
	var out []models.Badge
	for _, b := range Catalog {
		if !progress.HasBadge(b.ID) {
			out = append(out, b)
		}
	}
	return out
}
