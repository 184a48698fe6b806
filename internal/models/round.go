package models

// RoundStats is the summary emitted once per completed round
type RoundStats struct {
	Score        int  `json:"score"`
	MaxStreak    int  `json:"maxStreak"`
	PerfectRound bool `json:"perfectRound"`
}

// RoundProgress is the display view of a round in progress
type RoundProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Score   int `json:"score"`
	Points  int `json:"points"`
}

// SubmitResult describes the outcome of one answer submission
type SubmitResult struct {
	Correct       bool   `json:"correct"`
	PointsEarned  int    `json:"pointsEarned"`
	AttemptNumber int    `json:"attemptNumber"`
	ShouldAdvance bool   `json:"shouldAdvance"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Option is one labelled multiple-choice answer
type Option struct {
	Prefix string `json:"prefix"`
	Value  string `json:"value"`
}
