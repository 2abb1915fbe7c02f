package scoring

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/models"
)

// Fixed per-dimension weights applied to the mean trimmed answer length.
const (
	weightCommunication  = 0.6
	weightProblemSolving = 0.9
	weightEmpathy        = 0.7
)

// Heuristic scores an answer set from the mean trimmed response length.
// It has no external dependency and cannot fail; it is both the default
// provider and the fallback for the model-backed one.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Score(_ context.Context, answers []models.Answer) models.Analysis {
	total := 0
	for _, a := range answers {
		total += utf8.RuneCountInString(strings.TrimSpace(a.Response))
	}
	n := len(answers)
	if n == 0 {
		n = 1
	}
	mean := float64(total) / float64(n)

	return models.Analysis{
		Scores: models.Scores{
			Communication:  clampScore(mean * weightCommunication),
			ProblemSolving: clampScore(mean * weightProblemSolving),
			Empathy:        clampScore(mean * weightEmpathy),
		},
		Explanations: models.Explanations{
			Communication:  "Your responses were clear and structured, showing good communication.",
			ProblemSolving: "You demonstrated a logical approach to tackling problems.",
			Empathy:        "Your answers showed awareness of others' perspectives and emotions.",
		},
	}
}
