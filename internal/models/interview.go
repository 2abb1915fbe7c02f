package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusCompleted is the only status an interview ever carries: submissions
// are all-or-nothing, there is no partial or resumable state.
const StatusCompleted = "COMPLETED"

type Question struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

type Answer struct {
	QuestionID string `bson:"questionId" json:"questionId"`
	Response   string `bson:"response" json:"response"`
}

// Interview is the immutable record of a completed five-answer attempt.
// Questions is a snapshot of the catalog at submission time.
type Interview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"interviewId"`
	UserID    string             `bson:"userId" json:"-"`
	Questions []Question         `bson:"questions" json:"questions"`
	Answers   []Answer           `bson:"answers" json:"answers"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
