package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		answers []Answer
		correct int
		rate    int
	}{
		{"empty", nil, 0, 0},
		{"three of four", []Answer{{IsCorrect: true}, {IsCorrect: true}, {IsCorrect: true}, {}}, 3, 75},
		{"all correct", []Answer{{IsCorrect: true}, {IsCorrect: true}, {IsCorrect: true}, {IsCorrect: true}}, 4, 100},
		{"none correct", []Answer{{}, {}}, 0, 0},
		{"one of three rounds", []Answer{{IsCorrect: true}, {}, {}}, 1, 33},
		{"two of three rounds", []Answer{{IsCorrect: true}, {IsCorrect: true}, {}}, 2, 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.answers)
			assert.Equal(t, tt.correct, s.CorrectCount)
			assert.Equal(t, len(tt.answers), s.Total)
			assert.Equal(t, tt.rate, s.Rate)
		})
	}
}
