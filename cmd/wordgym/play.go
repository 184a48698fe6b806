package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"wordgym/internal/badges"
	"wordgym/internal/game"
	"wordgym/internal/models"
	"wordgym/internal/progress"
	"wordgym/internal/scoring"
	"wordgym/internal/service"
)

var tierMessages = map[scoring.Tier]string{
	scoring.TierExcellent:     "Odlično!",
	scoring.TierGood:          "Dobro!",
	scoring.TierEncouragement: "Vaja dela mojstra!",
}

// play runs one round reading answers line by line from in
func play(svc *service.GameService, mode models.GameMode, in io.Reader, out io.Writer) error {
	if err := svc.StartGame(mode); err != nil {
		return err
	}

	engine := svc.Engine()
	scanner := bufio.NewScanner(in)
	for engine.State() == game.StateInProgress {
		item, _ := engine.CurrentItem()
		rp := engine.Progress()
		fmt.Fprintf(out, "\n[%d/%d] %s\n", rp.Current, rp.Total, prompt(item, mode))

		options := engine.Options()
		for _, o := range options {
			fmt.Fprintf(out, "  %s) %s\n", o.Prefix, o.Value)
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			svc.GoHome()
			return scanner.Err()
		}

		result := svc.SubmitAnswer(resolveOption(scanner.Text(), options))
		switch {
		case result.Correct:
			fmt.Fprintf(out, "Pravilno! +%d\n", result.PointsEarned)
		case result.ShouldAdvance:
			fmt.Fprintf(out, "Pravilen odgovor: %s\n", result.CorrectAnswer)
		default:
			fmt.Fprintln(out, "Poskusi še enkrat.")
		}
		if result.ShouldAdvance {
			svc.Advance()
		}
	}

	summary, err := svc.CompleteRound()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s %d/%d, %d točk\n", tierMessages[summary.Tier], summary.Stats.Score, game.RoundSize, summary.TotalPoints)
	for _, b := range summary.NewBadges {
		fmt.Fprintf(out, "Nova značka: %s (%s)\n", b.Name, b.Description)
	}
	return nil
}

func prompt(item models.QuizItem, mode models.GameMode) string {
	switch item.Kind {
	case models.KindGrammar:
		return item.Grammar.Sentence
	case models.KindLexical:
		if mode == models.ModePluralForms {
			return fmt.Sprintf("Množina: %s", item.Word.English)
		}
		return fmt.Sprintf("Kako se napiše: %s", item.Word.Slovenian)
	}
	return ""
}

// resolveOption maps an option prefix to its value. Anything else is taken as typed.
func resolveOption(input string, options []models.Option) string {
	choice := strings.ToLower(strings.TrimSpace(input))
	for _, o := range options {
		if choice == o.Prefix {
			return o.Value
		}
	}
	return input
}

func show(store *progress.Store, out io.Writer) {
	p := store.Snapshot()
	fmt.Fprintf(out, "Točke:            %d\n", p.TotalPoints)
	fmt.Fprintf(out, "Pravilne besede:  %d\n", p.WordsCompleted)
	fmt.Fprintf(out, "Odigrane igre:    %d\n", p.RoundsPlayed)
	fmt.Fprintf(out, "Niz:              %d (najdaljši %d)\n", p.CurrentStreak, p.LongestStreak)
	fmt.Fprintf(out, "Dnevi zapored:    %d (zadnjič %s)\n", p.ConsecutiveDays, p.LastPlayedDate)

	fmt.Fprintln(out, "\nZnačke:")
	for _, b := range badges.Earned(p) {
		fmt.Fprintf(out, "  [x] %s: %s\n", b.Name, b.Description)
	}
	for _, b := range badges.Locked(p) {
		fmt.Fprintf(out, "  [ ] %s: %s\n", b.Name, b.Description)
	}
	if !store.StorageAvailable() {
		fmt.Fprintln(out, "\nOpozorilo: napredek se ne shranjuje.")
	}
}
