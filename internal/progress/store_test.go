package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"wordgym/internal/badges"
	"wordgym/internal/models"
	"wordgym/internal/storage"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestStore(t *testing.T, kv storage.KeyValue) *Store {
	t.Helper()
	return NewStore(kv, "", WithClock(fixedClock(testNow)))
}

func seed(t *testing.T, kv storage.KeyValue, p models.PersistedProgress) {
	t.Helper()
	if err := storage.SetJSON(kv, DefaultKey, p); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func stored(t *testing.T, kv storage.KeyValue) models.PersistedProgress {
	t.Helper()
	var p models.PersistedProgress
	found, err := storage.GetJSON(kv, DefaultKey, &p)
	if err != nil || !found {
		t.Fatalf("stored progress: found=%v err=%v", found, err)
	}
	return p
}

// flakyStore accepts the availability probe and then fails reads or writes on demand
type flakyStore struct {
	*storage.MemoryStore
	failGet bool
	failSet bool
}

func (f *flakyStore) Get(key string) ([]byte, error) {
	if f.failGet {
		return nil, errors.New("connection reset")
	}
	return f.MemoryStore.Get(key)
}

func (f *flakyStore) Set(key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(key, value)
}

func TestLoadInitialisesFreshProgress(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"absent", ""},
		{"foreign version", `{"version":2,"totalPoints":50}`},
		{"corrupt json", `{"version":1,`},
		{"negative counter", `{"version":1,"totalPoints":-5,"lastPlayedDate":"2026-03-09"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			if tt.raw != "" {
				kv.Set(DefaultKey, []byte(tt.raw))
			}

			s := newTestStore(t, kv)
			p := s.Snapshot()
			if p.Version != models.ProgressVersion || p.TotalPoints != 0 {
				t.Errorf("Snapshot() = %+v, want fresh record", p)
			}
			if p.LastPlayedDate != "2026-03-10" || p.ConsecutiveDays != 1 {
				t.Errorf("date = %s days = %d, want 2026-03-10 and 1", p.LastPlayedDate, p.ConsecutiveDays)
			}
			if got := stored(t, kv); got.Version != 1 || got.LastPlayedDate != "2026-03-10" {
				t.Errorf("fresh record not persisted: %+v", got)
			}
		})
	}
}

func TestDayTransition(t *testing.T) {
	tests := []struct {
		name     string
		last     string
		days     int
		wantDays int
		wantDate string
	}{
		{"same day", "2026-03-10", 4, 4, "2026-03-10"},
		{"yesterday", "2026-03-09", 4, 5, "2026-03-10"},
		{"two days ago", "2026-03-08", 4, 1, "2026-03-10"},
		{"month boundary", "2026-02-28", 2, 1, "2026-03-10"},
		{"never played", "", 0, 1, "2026-03-10"},
		{"future date", "2026-03-11", 3, 1, "2026-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			p := models.NewProgress(tt.last)
			p.ConsecutiveDays = tt.days
			p.TotalPoints = 120
			seed(t, kv, p)

			s := newTestStore(t, kv)
			got := s.Snapshot()
			if got.ConsecutiveDays != tt.wantDays {
				t.Errorf("ConsecutiveDays = %d, want %d", got.ConsecutiveDays, tt.wantDays)
			}
			if got.LastPlayedDate != tt.wantDate {
				t.Errorf("LastPlayedDate = %s, want %s", got.LastPlayedDate, tt.wantDate)
			}
			if got.TotalPoints != 120 {
				t.Errorf("TotalPoints = %d, want 120", got.TotalPoints)
			}
			if persisted := stored(t, kv); persisted.ConsecutiveDays != tt.wantDays {
				t.Errorf("persisted ConsecutiveDays = %d, want %d", persisted.ConsecutiveDays, tt.wantDays)
			}
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Ljubljana")
	if err != nil {
		t.Skip("timezone data unavailable")
	}
	if got := daysBetween("2026-03-28", "2026-03-29", loc); got != 1 {
		t.Errorf("daysBetween() = %d, want 1", got)
	}
	if got := daysBetween("2026-10-24", "2026-10-25", loc); got != 1 {
		t.Errorf("daysBetween() = %d, want 1", got)
	}
}

func TestMutationsWriteThrough(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := newTestStore(t, kv)

	s.AddPoints(30)
	s.RecordItemAttempt("w1", true)
	s.RecordItemAttempt("w1", false)
	s.RecordItemAttempt("w2", true)
	s.IncrementRoundsPlayed()

	mem := s.Snapshot()
	disk := stored(t, kv)
	for name, p := range map[string]models.PersistedProgress{"memory": mem, "storage": disk} {
		if p.TotalPoints != 30 {
			t.Errorf("%s TotalPoints = %d, want 30", name, p.TotalPoints)
		}
		if p.WordsCompleted != 2 {
			t.Errorf("%s WordsCompleted = %d, want 2", name, p.WordsCompleted)
		}
		if p.RoundsPlayed != 1 {
			t.Errorf("%s RoundsPlayed = %d, want 1", name, p.RoundsPlayed)
		}
		want := models.WordStats{Attempts: 2, Correct: 1, LastPlayed: "2026-03-10"}
		if p.WordStats["w1"] != want {
			t.Errorf("%s WordStats[w1] = %+v, want %+v", name, p.WordStats["w1"], want)
		}
	}
}

func TestStreaks(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryStore())

	for _, correct := range []bool{true, true, true, false, true} {
		s.UpdateStreak(correct)
	}
	p := s.Snapshot()
	if p.CurrentStreak != 1 || p.LongestStreak != 3 {
		t.Errorf("streaks = %d/%d, want 1/3", p.CurrentStreak, p.LongestStreak)
	}

	s.UpdateStreak(true)
	s.ResetCurrentStreak()
	p = s.Snapshot()
	if p.CurrentStreak != 0 || p.LongestStreak != 3 {
		t.Errorf("after reset streaks = %d/%d, want 0/3", p.CurrentStreak, p.LongestStreak)
	}
}

func TestCheckAndAwardBadges(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := newTestStore(t, kv)
	s.IncrementRoundsPlayed()

	stats := &models.RoundStats{Score: 10, MaxStreak: 10, PerfectRound: true}
	first := s.CheckAndAwardBadges(stats)

	var ids []string
	for _, b := range first {
		ids = append(ids, b.ID)
	}
	want := []string{badges.FirstRound, badges.PerfectRound, badges.StreakFive}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("first award = %v, want %v", ids, want)
	}

	if again := s.CheckAndAwardBadges(stats); len(again) != 0 {
		t.Errorf("second award = %v, want none", again)
	}
	if got := stored(t, kv).Badges; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("persisted badges = %v, want %v", got, want)
	}
}

func TestUnavailableStorage(t *testing.T) {
	s := newTestStore(t, storage.UnavailableStore{})
	if s.StorageAvailable() {
		t.Fatal("StorageAvailable() = true, want false")
	}

	s.AddPoints(25)
	s.RecordItemAttempt("w1", true)
	s.IncrementRoundsPlayed()
	earned := s.CheckAndAwardBadges(nil)

	p := s.Snapshot()
	if p.TotalPoints != 25 || p.WordsCompleted != 1 || p.RoundsPlayed != 1 {
		t.Errorf("in-memory progress not updated: %+v", p)
	}
	if len(earned) != 1 || earned[0].ID != badges.FirstRound {
		t.Errorf("earned = %v, want first-round", earned)
	}
}

func TestWriteFailureDegradesToMemory(t *testing.T) {
	kv := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	s := newTestStore(t, kv)
	s.AddPoints(10)

	kv.failSet = true
	s.AddPoints(15)

	if s.StorageAvailable() {
		t.Error("StorageAvailable() = true after failed write")
	}
	if got := s.Snapshot().TotalPoints; got != 25 {
		t.Errorf("TotalPoints = %d, want 25", got)
	}
	if got := stored(t, kv.MemoryStore).TotalPoints; got != 10 {
		t.Errorf("persisted TotalPoints = %d, want 10", got)
	}
}

func TestReadFailureKeepsStoredProgress(t *testing.T) {
	kv := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	saved := models.NewProgress("2026-03-09")
	saved.TotalPoints = 900
	saved.RoundsPlayed = 42
	saved.Badges = []string{badges.FirstRound, badges.TenRounds}
	seed(t, kv.MemoryStore, saved)

	kv.failGet = true
	s := newTestStore(t, kv)
	kv.failGet = false

	if s.StorageAvailable() {
		t.Error("StorageAvailable() = true after failed read")
	}
	s.AddPoints(10)
	s.IncrementRoundsPlayed()
	if got := s.Snapshot(); got.TotalPoints != 10 || got.RoundsPlayed != 1 {
		t.Errorf("in-memory progress = %+v, want 10 points 1 round", got)
	}

	got := stored(t, kv.MemoryStore)
	if got.TotalPoints != 900 || got.RoundsPlayed != 42 || len(got.Badges) != 2 {
		t.Errorf("stored progress overwritten: %+v", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryStore())
	s.RecordItemAttempt("w1", true)

	p := s.Snapshot()
	p.WordStats["w1"] = models.WordStats{}
	p.Badges = append(p.Badges, "forged")

	again := s.Snapshot()
	if again.WordStats["w1"].Correct != 1 || again.HasBadge("forged") {
		t.Error("Snapshot() exposed internal state")
	}
}

func TestClear(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := newTestStore(t, kv)
	s.AddPoints(40)
	s.IncrementRoundsPlayed()
	s.CheckAndAwardBadges(nil)

	s.Clear()

	p := s.Snapshot()
	if p.TotalPoints != 0 || p.RoundsPlayed != 0 || len(p.Badges) != 0 {
		t.Errorf("Clear() left %+v", p)
	}
	if got := stored(t, kv); got.TotalPoints != 0 || got.ConsecutiveDays != 1 {
		t.Errorf("stored after Clear() = %+v", got)
	}
}

func TestExportImport(t *testing.T) {
	src := newTestStore(t, storage.NewMemoryStore())
	src.AddPoints(75)
	src.RecordItemAttempt("w9", true)
	src.IncrementRoundsPlayed()
	src.CheckAndAwardBadges(nil)

	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	kv := storage.NewMemoryStore()
	dst := newTestStore(t, kv)
	if err := dst.Import(&buf); err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	got := dst.Snapshot()
	if got.TotalPoints != 75 || got.WordStats["w9"].Correct != 1 || !got.HasBadge(badges.FirstRound) {
		t.Errorf("imported progress = %+v", got)
	}
	if stored(t, kv).TotalPoints != 75 {
		t.Error("imported progress not persisted")
	}
}

func TestImportRejectsInvalidBackup(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "nope"},
		{"wrong backup version", `{"version":"9","progress":{"version":1}}`},
		{"wrong progress version", `{"version":"1.0","progress":{"version":3}}`},
		{"negative points", `{"version":"1.0","progress":{"version":1,"totalPoints":-1}}`},
		{"bad date", `{"version":"1.0","progress":{"version":1,"lastPlayedDate":"10/03/2026"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, storage.NewMemoryStore())
			s.AddPoints(5)
			if err := s.Import(strings.NewReader(tt.raw)); err == nil {
				t.Fatal("Import() error = nil, want error")
			}
			if got := s.Snapshot().TotalPoints; got != 5 {
				t.Errorf("TotalPoints = %d after rejected import, want 5", got)
			}
		})
	}
}
