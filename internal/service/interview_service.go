package service

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/metrics"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/models"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/questions"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/scoring"
)

// InterviewStore and FeedbackStore are the persistence capabilities the
// service needs; tests inject in-memory fakes.
type InterviewStore interface {
	Create(ctx context.Context, iv *models.Interview) (primitive.ObjectID, error)
	FindByIDAndUser(ctx context.Context, id primitive.ObjectID, userID string) (*models.Interview, error)
}

type FeedbackStore interface {
	Create(ctx context.Context, fb *models.Feedback) (primitive.ObjectID, error)
	FindByUser(ctx context.Context, userID string) ([]models.Feedback, error)
	FindByInterview(ctx context.Context, interviewID primitive.ObjectID, userID string) (*models.Feedback, error)
}

type InterviewService struct {
	interviews InterviewStore
	feedbacks  FeedbackStore
	scorer     scoring.Scorer
}

func NewInterviewService(interviews InterviewStore, feedbacks FeedbackStore, scorer scoring.Scorer) *InterviewService {
	return &InterviewService{interviews: interviews, feedbacks: feedbacks, scorer: scorer}
}

type SubmitResult struct {
	InterviewID string          `json:"interviewId"`
	Feedback    models.Analysis `json:"feedback"`
}

type HistoryEntry struct {
	InterviewID string        `json:"interviewId"`
	CreatedAt   time.Time     `json:"createdAt"`
	Scores      models.Scores `json:"scores"`
}

type FeedbackView struct {
	Scores       models.Scores       `json:"scores"`
	Explanations models.Explanations `json:"explanations"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type InterviewDetail struct {
	InterviewID string            `json:"interviewId"`
	Questions   []models.Question `json:"questions"`
	Answers     []models.Answer   `json:"answers"`
	Feedback    *FeedbackView     `json:"feedback"`
}

// SubmitInterview validates the answer set, persists the interview with a
// catalog snapshot, scores it, and persists the derived feedback. The
// feedback write only runs after the interview insert succeeded; the
// reverse state (feedback without interview) cannot occur.
func (s *InterviewService) SubmitInterview(ctx context.Context, userID string, answers []models.Answer) (*SubmitResult, error) {
	if len(answers) != len(questions.Catalog) {
		return nil, invalidInput("All questions must be answered")
	}

	ids := questions.IDSet()
	seen := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := ids[a.QuestionID]; !ok {
			return nil, invalidInput("Invalid question ID")
		}
		if _, dup := seen[a.QuestionID]; dup {
			return nil, invalidInput("Duplicate question ID")
		}
		seen[a.QuestionID] = struct{}{}
	}

	iv := &models.Interview{
		UserID:    userID,
		Questions: questions.Snapshot(),
		Answers:   answers,
		Status:    models.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	interviewID, err := s.interviews.Create(ctx, iv)
	if err != nil {
		return nil, internal("failed to save interview", err)
	}
	log.Printf("Interview created id=%s for userId=%s", interviewID.Hex(), userID)

	analysis := s.scorer.Score(ctx, answers)
	log.Printf("Analysis complete for interviewId=%s: communication=%d problemSolving=%d empathy=%d",
		interviewID.Hex(), analysis.Scores.Communication, analysis.Scores.ProblemSolving, analysis.Scores.Empathy)

	fb := &models.Feedback{
		InterviewID:  interviewID,
		UserID:       userID,
		Scores:       analysis.Scores,
		Explanations: analysis.Explanations,
		CreatedAt:    time.Now().UTC(),
	}
	feedbackID, err := s.feedbacks.Create(ctx, fb)
	if err != nil {
		// The interview stands; the detail view reports feedback: null.
		return nil, internal("failed to save feedback", err)
	}
	log.Printf("Feedback created id=%s for interviewId=%s", feedbackID.Hex(), interviewID.Hex())
	metrics.SubmissionsTotal.Inc()

	return &SubmitResult{
		InterviewID: interviewID.Hex(),
		Feedback:    analysis,
	}, nil
}

// History lists the caller's feedback summaries, newest first.
func (s *InterviewService) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	fbs, err := s.feedbacks.FindByUser(ctx, userID)
	if err != nil {
		return nil, internal("failed to load history", err)
	}
	out := make([]HistoryEntry, 0, len(fbs))
	for _, fb := range fbs {
		out = append(out, HistoryEntry{
			InterviewID: fb.InterviewID.Hex(),
			CreatedAt:   fb.CreatedAt,
			Scores:      fb.Scores,
		})
	}
	return out, nil
}

// Detail returns one interview with its transcript and feedback, scoped to
// the caller. A malformed id or another owner's interview both come back as
// not-found; existence is never leaked.
func (s *InterviewService) Detail(ctx context.Context, userID, interviewID string) (*InterviewDetail, error) {
	id, err := primitive.ObjectIDFromHex(interviewID)
	if err != nil {
		return nil, notFound("Interview not found")
	}

	iv, err := s.interviews.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, internal("failed to load interview", err)
	}
	if iv == nil {
		log.Printf("Interview not found interviewId=%s for userId=%s", interviewID, userID)
		return nil, notFound("Interview not found")
	}

	detail := &InterviewDetail{
		InterviewID: iv.ID.Hex(),
		Questions:   iv.Questions,
		Answers:     iv.Answers,
	}

	fb, err := s.feedbacks.FindByInterview(ctx, id, userID)
	if err != nil {
		return nil, internal("failed to load feedback", err)
	}
	if fb != nil {
		detail.Feedback = &FeedbackView{
			Scores:       fb.Scores,
			Explanations: fb.Explanations,
			CreatedAt:    fb.CreatedAt,
		}
	}
	return detail, nil
}
