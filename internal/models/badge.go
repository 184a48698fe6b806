package models

// Badge is a catalog-defined achievement. Condition must be pure.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Condition   func(progress PersistedProgress, stats *RoundStats) bool `json:"-"`
}
