// Package catalog holds the read-only word list and grammar question bank
// that rounds are drawn from.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"wordgym/internal/models"
	"wordgym/internal/validation"
)

//go:embed data/words.json
var wordsJSON []byte

//go:embed data/grammar.json
var grammarJSON []byte

// Catalog is the fixed content a round engine selects from
type Catalog struct {
	Words   []models.Word            `json:"words"`
	Grammar []models.GrammarQuestion `json:"grammar"`
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	c := &Catalog{}
	if err := json.Unmarshal(wordsJSON, &c.Words); err != nil {
		return nil, fmt.Errorf("failed to parse word list: %w", err)
	}
	if err := json.Unmarshal(grammarJSON, &c.Grammar); err != nil {
		return nil, fmt.Errorf("failed to parse grammar questions: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a catalog from a JSON file shaped {"words": [...], "grammar": [...]}.
// Sections missing from the file fall back to the built-in content.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	if len(c.Words) == 0 || len(c.Grammar) == 0 {
		def, err := Default()
		if err != nil {
			return nil, err
		}
		if len(c.Words) == 0 {
			c.Words = def.Words
		}
		if len(c.Grammar) == 0 {
			c.Grammar = def.Grammar
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the content-authoring rules for every entry and returns
// all problems joined together.
func (c *Catalog) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.Words))
	for _, w := range c.Words {
		if seen[w.ID] {
			errs = append(errs, fmt.Errorf("duplicate word id %q", w.ID))
		}
		seen[w.ID] = true
		if err := validation.ValidateWord(w); err != nil {
			errs = append(errs, err)
		}
	}

	seen = make(map[string]bool, len(c.Grammar))
	for _, q := range c.Grammar {
		if seen[q.ID] {
			errs = append(errs, fmt.Errorf("duplicate grammar question id %q", q.ID))
		}
		seen[q.ID] = true
		if err := validation.ValidateGrammarQuestion(q); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// EligibleItems returns the pool a round in the given mode samples from
func (c *Catalog) EligibleItems(mode models.GameMode) []models.QuizItem {
	switch mode {
	case models.ModeGrammarForms:
		items := make([]models.QuizItem, 0, len(c.Grammar))
		for _, q := range c.Grammar {
			items = append(items, models.GrammarItem(q))
		}
		return items
	case models.ModePluralForms:
		var items []models.QuizItem
		for _, w := range c.Words {
			if w.HasPluralDrill() {
				items = append(items, models.LexicalItem(w))
			}
		}
		return items
	case models.ModeListenSpell, models.ModePickSpelling:
		items := make([]models.QuizItem, 0, len(c.Words))
		for _, w := range c.Words {
			items = append(items, models.LexicalItem(w))
		}
		return items
	}
	return nil
}

// WordByID looks up a word by id
func (c *Catalog) WordByID(id string) (models.Word, bool) {
	for _, w := range c.Words {
		if w.ID == id {
			return w, true
		}
	}
	return models.Word{}, false
}
