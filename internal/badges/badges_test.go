package badges

import (
	"reflect"
	"testing"

	"wordgym/internal/models"
)

func ids(bs []models.Badge) []string {
	out := []string{}
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}

func TestCatalogOrder(t *testing.T) {
	want := []string{FirstRound, TenRounds, PerfectRound, HundredWords, StreakFive, FiveHundredWords, DailyHabit}
	if got := ids(Catalog); !reflect.DeepEqual(got, want) {
		t.Errorf("Catalog ids = %v, want %v", got, want)
	}
}

func TestCheckNewlyEarned(t *testing.T) {
	base := models.NewProgress("2026-10-19")

	tests := []struct {
		name   string
		mutate func(p *models.PersistedProgress)
		stats  *models.RoundStats
		want   []string
	}{
		{
			name:   "fresh progress earns nothing",
			mutate: func(p *models.PersistedProgress) {},
			want:   []string{},
		},
		{
			name:   "first round",
			mutate: func(p *models.PersistedProgress) { p.RoundsPlayed = 1 },
			stats:  &models.RoundStats{Score: 6, MaxStreak: 3},
			want:   []string{FirstRound},
		},
		{
			name:   "perfect round from stats",
			mutate: func(p *models.PersistedProgress) { p.RoundsPlayed = 1 },
			stats:  &models.RoundStats{Score: 10, MaxStreak: 10, PerfectRound: true},
			want:   []string{FirstRound, PerfectRound, StreakFive},
		},
		{
			name:   "streak from longest streak without stats",
			mutate: func(p *models.PersistedProgress) { p.LongestStreak = 5 },
			want:   []string{StreakFive},
		},
		{
			name: "already earned badges are skipped",
			mutate: func(p *models.PersistedProgress) {
				p.RoundsPlayed = 12
				p.Badges = []string{FirstRound}
			},
			want: []string{TenRounds},
		},
		{
			name: "word milestones and daily habit",
			mutate: func(p *models.PersistedProgress) {
				p.WordsCompleted = 500
				p.ConsecutiveDays = 7
			},
			want: []string{HundredWords, FiveHundredWords, DailyHabit},
		},
		{
			name:   "nil stats never unlock perfect round",
			mutate: func(p *models.PersistedProgress) { p.Badges = []string{} },
			stats:  nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base.Clone()
			tt.mutate(&p)
			before := p.Clone()

			got := ids(CheckNewlyEarned(p, tt.stats))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CheckNewlyEarned() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(p, before) {
				t.Error("CheckNewlyEarned() mutated progress")
			}
			again := ids(CheckNewlyEarned(p, tt.stats))
			if !reflect.DeepEqual(got, again) {
				t.Errorf("second evaluation differs: %v vs %v", got, again)
			}
		})
	}
}

func TestEarnedAndLocked(t *testing.T) {
	p := models.NewProgress("2026-10-19")
	p.Badges = []string{DailyHabit, FirstRound}

	if got := ids(Earned(p)); !reflect.DeepEqual(got, []string{FirstRound, DailyHabit}) {
		t.Errorf("Earned() = %v", got)
	}
	if got := Locked(p); len(got) != len(Catalog)-2 {
		t.Errorf("Locked() returned %d badges, want %d", len(got), len(Catalog)-2)
	}

	b, ok := ByID(PerfectRound)
	if !ok || b.Icon != "crown" {
		t.Errorf("ByID(%q) = %+v, %v", PerfectRound, b, ok)
	}
	if _, ok := ByID("nope"); ok {
		t.Error("ByID(nope) should not be found")
	}
}
