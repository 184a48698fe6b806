// Package scoring holds the point and answer-checking rules of the game.
// Nothing here keeps state.
package scoring

import "strings"

// Point values awarded during and at the end of a round
const (
	FirstTryPoints     = 10
	SecondTryPoints    = 5
	RoundCompleteBonus = 5
	PerfectRoundBonus  = 20
)

// PerfectScore is the correct-count of a perfect round
const PerfectScore = 10

// Tier buckets a round score for feedback messages
type Tier string

const (
	TierExcellent     Tier = "excellent"
	TierGood          Tier = "good"
	TierEncouragement Tier = "encouragement"
)

// PointsForAttempt returns the points for a correct answer on the given attempt.
// Anything other than attempt 1 or 2 earns nothing.
func PointsForAttempt(attemptNumber int) int {
	switch attemptNumber {
	case 1:
		return FirstTryPoints
	case 2:
		return SecondTryPoints
	}
	return 0
}

// RoundTotal adds the completion bonus, and the perfect round bonus when
// correctCount is a perfect score, to the points earned during the round.
func RoundTotal(correctCount, roundPoints int) int {
	total := roundPoints + RoundCompleteBonus
	if correctCount == PerfectScore {
		total += PerfectRoundBonus
	}
	return total
}

// IsAnswerCorrect compares answers ignoring case and surrounding whitespace
func IsAnswerCorrect(submitted, expected string) bool {
	return normalize(submitted) == normalize(expected)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ScoreTier picks the feedback tier for a round score
func ScoreTier(score int) Tier {
	switch {
	case score >= 8:
		return TierExcellent
	case score >= 5:
		return TierGood
	}
	return TierEncouragement
}
