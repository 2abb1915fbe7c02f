package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/models"
)

const FeedbacksCollection = "feedbacks"

type FeedbackRepo struct {
	col *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{col: db.Collection(FeedbacksCollection)}
}

func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "interviewId", Value: 1}, {Key: "userId", Value: 1}}},
	})
	return err
}

func (r *FeedbackRepo) Create(ctx context.Context, fb *models.Feedback) (primitive.ObjectID, error) {
	if fb.ID.IsZero() {
		fb.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, fb); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert feedback: %w", err)
	}
	return fb.ID, nil
}

// FindByUser returns the owner's feedback records, newest first.
func (r *FeedbackRepo) FindByUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find feedbacks: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Feedback
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode feedbacks: %w", err)
	}
	return out, nil
}

// FindByInterview fetches the feedback for one interview, scoped to its
// owner. Returns nil, nil when no feedback exists yet.
func (r *FeedbackRepo) FindByInterview(ctx context.Context, interviewID primitive.ObjectID, userID string) (*models.Feedback, error) {
	var fb models.Feedback
	err := r.col.FindOne(ctx, bson.M{"interviewId": interviewID, "userId": userID}).Decode(&fb)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return &fb, nil
}
