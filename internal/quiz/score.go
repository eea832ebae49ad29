package quiz

import "math"

// Answer is one per-question outcome inside a session, whether freshly
// answered or reconstructed from stored lead answers.
type Answer struct {
	IsCorrect   bool  `json:"isCorrect"`
	TimeSpentMs int64 `json:"timeSpent"`
}

// Score is the aggregate of a completed run. Rate is a whole
// percentage; zero answers score 0 rather than dividing by zero.
type Score struct {
	CorrectCount int `json:"correctCount"`
	Total        int `json:"total"`
	Rate         int `json:"scoreRate"`
}

func Summarize(answers []Answer) Score {
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	denom := len(answers)
	if denom == 0 {
		denom = 1
	}
	return Score{
		CorrectCount: correct,
		Total:        len(answers),
		Rate:         int(math.Round(float64(correct) / float64(denom) * 100)),
	}
}
