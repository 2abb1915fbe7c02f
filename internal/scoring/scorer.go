// Package scoring computes feedback for a submitted answer set.
//
// Two variants exist behind the Scorer capability: a dependency-free
// heuristic and an OpenAI-backed evaluator that degrades to the heuristic on
// any failure. Score therefore returns no error: from the pipeline's point
// of view scoring always succeeds.
package scoring

import (
	"context"
	"math"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/models"
)

// Scorer is chosen once at startup from configuration and injected into the
// submission pipeline.
type Scorer interface {
	Score(ctx context.Context, answers []models.Answer) models.Analysis
}

// clampScore coerces a raw score into an integer in [0,100]. Both variants
// route through it, so out-of-range or fractional model output can never
// reach a Feedback record.
func clampScore(n float64) int {
	r := math.Round(n)
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	if r > 100 {
		return 100
	}
	return int(r)
}
