package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/models"
)

const InterviewsCollection = "interviews"

type InterviewRepo struct {
	col *mongo.Collection
}

func NewInterviewRepo(db *mongo.Database) *InterviewRepo {
	return &InterviewRepo{col: db.Collection(InterviewsCollection)}
}

func (r *InterviewRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Create inserts the interview and returns its id. The id is generated
// client-side so the caller holds it before any dependent write.
func (r *InterviewRepo) Create(ctx context.Context, iv *models.Interview) (primitive.ObjectID, error) {
	if iv.ID.IsZero() {
		iv.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, iv); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert interview: %w", err)
	}
	return iv.ID, nil
}

// FindByIDAndUser looks up an interview by id and owner in one compound
// query, so another owner's interview is indistinguishable from a missing
// one. Returns nil, nil when not found.
func (r *InterviewRepo) FindByIDAndUser(ctx context.Context, id primitive.ObjectID, userID string) (*models.Interview, error) {
	var iv models.Interview
	err := r.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&iv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find interview: %w", err)
	}
	return &iv, nil
}
