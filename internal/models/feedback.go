package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Scores struct {
	Communication  int `bson:"communication" json:"communication"`
	ProblemSolving int `bson:"problemSolving" json:"problemSolving"`
	Empathy        int `bson:"empathy" json:"empathy"`
}

type Explanations struct {
	Communication  string `bson:"communication" json:"communication"`
	ProblemSolving string `bson:"problemSolving" json:"problemSolving"`
	Empathy        string `bson:"empathy" json:"empathy"`
}

// Analysis is the scoring provider's result, persisted verbatim as Feedback.
type Analysis struct {
	Scores       Scores       `json:"scores"`
	Explanations Explanations `json:"explanations"`
}

// Feedback is derived from exactly one Interview and never mutated.
// InterviewID is a reference, not an ownership relation: ownership is
// carried by UserID on both records.
type Feedback struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	InterviewID  primitive.ObjectID `bson:"interviewId" json:"interviewId"`
	UserID       string             `bson:"userId" json:"-"`
	Scores       Scores             `bson:"scores" json:"scores"`
	Explanations Explanations       `bson:"explanations" json:"explanations"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
