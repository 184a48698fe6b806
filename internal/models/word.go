package models

// GameMode identifies one of the drill types a round can be played in
type GameMode string

const (
	ModeListenSpell  GameMode = "listen-spell"
	ModePickSpelling GameMode = "pick-spelling"
	ModePluralForms  GameMode = "plural-forms"
	ModeGrammarForms GameMode = "grammar-forms"
)

// AllModes lists the game modes in menu order
var AllModes = []GameMode{ModeListenSpell, ModePickSpelling, ModePluralForms, ModeGrammarForms}

// Valid reports whether m is a known game mode
func (m GameMode) Valid() bool {
	switch m {
	case ModeListenSpell, ModePickSpelling, ModePluralForms, ModeGrammarForms:
		return true
	}
	return false
}

// UsesGrammar reports whether the mode draws from the grammar question bank
func (m GameMode) UsesGrammar() bool {
	return m == ModeGrammarForms
}

// Difficulty is the difficulty tier of a word
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Word represents a vocabulary entry in the lexical catalog
type Word struct {
	ID               string     `json:"id"`
	English          string     `json:"english"`
	Slovenian        string     `json:"slovenian"`
	Difficulty       Difficulty `json:"difficulty"`
	WrongSpellings   []string   `json:"wrongSpellings"`
	PluralForm       string     `json:"pluralForm,omitempty"`
	WrongPluralForms []string   `json:"wrongPluralForms,omitempty"`
}

// HasPluralDrill reports whether the word carries the data needed for the plural mode
func (w Word) HasPluralDrill() bool {
	return w.PluralForm != "" && len(w.WrongPluralForms) == 2
}

// SubjectType categorises the subject of a grammar sentence. Content authoring only.
type SubjectType string

const (
	SubjectSingular    SubjectType = "singular"
	SubjectPlural      SubjectType = "plural"
	SubjectFirstPerson SubjectType = "first-person"
)

// GrammarQuestion is a fill-in-the-blank sentence with one correct answer
type GrammarQuestion struct {
	ID            string      `json:"id"`
	Sentence      string      `json:"sentence"`
	CorrectAnswer string      `json:"correctAnswer"`
	WrongAnswers  []string    `json:"wrongAnswers"`
	SubjectType   SubjectType `json:"subjectType"`
}

// ItemKind discriminates the QuizItem union
type ItemKind int

const (
	KindLexical ItemKind = iota + 1
	KindGrammar
)

func (k ItemKind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindGrammar:
		return "grammar"
	}
	return "unknown"
}

// QuizItem is either a lexical item or a grammar item. Exactly one of Word
// and Grammar is set, matching Kind.
type QuizItem struct {
	Kind    ItemKind
	Word    *Word
	Grammar *GrammarQuestion
}

// LexicalItem wraps a word as a quiz item
func LexicalItem(w Word) QuizItem {
	return QuizItem{Kind: KindLexical, Word: &w}
}

// GrammarItem wraps a grammar question as a quiz item
func GrammarItem(q GrammarQuestion) QuizItem {
	return QuizItem{Kind: KindGrammar, Grammar: &q}
}

// ID returns the catalog id of the wrapped item
func (q QuizItem) ID() string {
	switch q.Kind {
	case KindLexical:
		return q.Word.ID
	case KindGrammar:
		return q.Grammar.ID
	}
	return ""
}

// ExpectedAnswer returns the answer accepted for this item in the given mode
func (q QuizItem) ExpectedAnswer(mode GameMode) string {
	switch q.Kind {
	case KindLexical:
		if mode == ModePluralForms && q.Word.PluralForm != "" {
			return q.Word.PluralForm
		}
		return q.Word.English
	case KindGrammar:
		return q.Grammar.CorrectAnswer
	}
	return ""
}

// Distractors returns the wrong answers offered alongside the expected one
func (q QuizItem) Distractors(mode GameMode) []string {
	switch q.Kind {
	case KindLexical:
		if mode == ModePluralForms {
			return q.Word.WrongPluralForms
		}
		return q.Word.WrongSpellings
	case KindGrammar:
		return q.Grammar.WrongAnswers
	}
	return nil
}
