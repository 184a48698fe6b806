package validation

import (
	"fmt"
	"strings"
	"time"

	"wordgym/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateWord checks a lexical catalog entry
func ValidateWord(w models.Word) error {
	if strings.TrimSpace(w.ID) == "" {
		return ValidationError{Field: "id", Message: "id is required"}
	}
	if strings.TrimSpace(w.English) == "" {
		return ValidationError{Field: "english", Message: fmt.Sprintf("word %s has no english term", w.ID)}
	}
	if len(w.WrongSpellings) < 2 {
		return ValidationError{Field: "wrongSpellings", Message: fmt.Sprintf("word %s needs at least 2 wrong spellings", w.ID)}
	}
	if w.PluralForm != "" && len(w.WrongPluralForms) != 2 {
		return ValidationError{Field: "wrongPluralForms", Message: fmt.Sprintf("word %s needs exactly 2 wrong plural forms", w.ID)}
	}
	if w.PluralForm == "" && len(w.WrongPluralForms) > 0 {
		return ValidationError{Field: "pluralForm", Message: fmt.Sprintf("word %s has wrong plural forms but no plural", w.ID)}
	}
	return nil
}

// ValidateGrammarQuestion checks a grammar catalog entry
func ValidateGrammarQuestion(q models.GrammarQuestion) error {
	if strings.TrimSpace(q.ID) == "" {
		return ValidationError{Field: "id", Message: "id is required"}
	}
	if strings.TrimSpace(q.Sentence) == "" {
		return ValidationError{Field: "sentence", Message: fmt.Sprintf("question %s has no sentence", q.ID)}
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return ValidationError{Field: "correctAnswer", Message: fmt.Sprintf("question %s has no correct answer", q.ID)}
	}
	if len(q.WrongAnswers) != 2 {
		return ValidationError{Field: "wrongAnswers", Message: fmt.Sprintf("question %s needs exactly 2 wrong answers", q.ID)}
	}
	for _, wrong := range q.WrongAnswers {
		if wrong == q.CorrectAnswer {
			return ValidationError{Field: "wrongAnswers", Message: fmt.Sprintf("question %s lists its correct answer as wrong", q.ID)}
		}
	}
	switch q.SubjectType {
	case models.SubjectSingular, models.SubjectPlural, models.SubjectFirstPerson:
	default:
		return ValidationError{Field: "subjectType", Message: fmt.Sprintf("question %s has unknown subject type %q", q.ID, q.SubjectType)}
	}
	return nil
}

// ValidateProgress checks a persisted progress blob read back from storage
func ValidateProgress(p models.PersistedProgress) error {
	if p.Version != models.ProgressVersion {
		return ValidationError{Field: "version", Message: fmt.Sprintf("unsupported version %d", p.Version)}
	}
	counters := []struct {
		field string
		value int
	}{
		{"totalPoints", p.TotalPoints},
		{"wordsCompleted", p.WordsCompleted},
		{"roundsPlayed", p.RoundsPlayed},
		{"currentStreak", p.CurrentStreak},
		{"longestStreak", p.LongestStreak},
		{"consecutiveDays", p.ConsecutiveDays},
	}
	for _, c := range counters {
		if c.value < 0 {
			return ValidationError{Field: c.field, Message: "must not be negative"}
		}
	}
	if err := validateDate("lastPlayedDate", p.LastPlayedDate); err != nil {
		return err
	}
	for id, s := range p.WordStats {
		if s.Attempts < 0 || s.Correct < 0 {
			return ValidationError{Field: "wordStats", Message: fmt.Sprintf("negative counter for %s", id)}
		}
		if err := validateDate("wordStats.lastPlayed", s.LastPlayed); err != nil {
			return err
		}
	}
	return nil
}

func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return ValidationError{Field: field, Message: fmt.Sprintf("invalid date %q", value)}
	}
	return nil
}
