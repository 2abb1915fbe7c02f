// Package questions holds the fixed behavioral interview catalog.
package questions

import "github.com/mohansaikiran/AI-Interview-Feedback/internal/models"

// Catalog is the process-wide question list. Never mutated; submissions
// persist their own copy via Snapshot.
var Catalog = []models.Question{
	{
		ID:   "q1",
		Text: "You discover a potential security vulnerability in a microservice. Walk me through your process for investigating, documenting, and addressing this issue?",
	},
	{
		ID:   "q2",
		Text: "Describe a situation where you had to quickly learn and implement a new technology stack or framework that was critical for a project. How did you approach the learning process?",
	},
	{
		ID:   "q3",
		Text: "Tell me about a time when you implemented a new AI feature that required architectural changes. How did you ensure the changes maintained system reliability?",
	},
	{
		ID:   "q4",
		Text: "Tell me about a time when you collaborated with a machine learning team to implement AI features. How did you ensure effective communication and integration?",
	},
	{
		ID:   "q5",
		Text: "Imagine you've been assigned to refactor a critical service that has significant technical debt. How would you approach this challenge while maintaining zero downtime?",
	},
}

// Snapshot returns a copy of the catalog safe to embed in a submission.
func Snapshot() []models.Question {
	out := make([]models.Question, len(Catalog))
	copy(out, Catalog)
	return out
}

// IDSet returns the catalog ids for membership checks.
func IDSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(Catalog))
	for _, q := range Catalog {
		ids[q.ID] = struct{}{}
	}
	return ids
}
