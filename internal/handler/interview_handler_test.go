package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/auth"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/handler"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/models"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/questions"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/router"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/scoring"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/service"
)

const testSecret = "handler-test-secret"

type memInterviewStore struct {
	items []*models.Interview
}

func (m *memInterviewStore) Create(_ context.Context, iv *models.Interview) (primitive.ObjectID, error) {
	iv.ID = primitive.NewObjectID()
	m.items = append(m.items, iv)
	return iv.ID, nil
}

func (m *memInterviewStore) FindByIDAndUser(_ context.Context, id primitive.ObjectID, userID string) (*models.Interview, error) {
	for _, iv := range m.items {
		if iv.ID == id && iv.UserID == userID {
			return iv, nil
		}
	}
	return nil, nil
}

type memFeedbackStore struct {
	items []*models.Feedback
}

func (m *memFeedbackStore) Create(_ context.Context, fb *models.Feedback) (primitive.ObjectID, error) {
	fb.ID = primitive.NewObjectID()
	m.items = append(m.items, fb)
	return fb.ID, nil
}

func (m *memFeedbackStore) FindByUser(_ context.Context, userID string) ([]models.Feedback, error) {
	var out []models.Feedback
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].UserID == userID {
			out = append(out, *m.items[i])
		}
	}
	return out, nil
}

func (m *memFeedbackStore) FindByInterview(_ context.Context, interviewID primitive.ObjectID, userID string) (*models.Feedback, error) {
	for _, fb := range m.items {
		if fb.InterviewID == interviewID && fb.UserID == userID {
			return fb, nil
		}
	}
	return nil, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.NewInterviewService(&memInterviewStore{}, &memFeedbackStore{}, scoring.NewHeuristic())
	srv := httptest.NewServer(router.New(testSecret, handler.NewInterviewHandler(svc)))
	t.Cleanup(srv.Close)
	return srv
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, userID, userID+"@test.com")
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(res.Body)
	require.NoError(t, err)
	return res, out.Bytes()
}

func submitBody(responseLen int) map[string]any {
	answers := make([]map[string]string, 0, len(questions.Catalog))
	for _, q := range questions.Catalog {
		resp := make([]byte, responseLen)
		for i := range resp {
			resp[i] = 'a'
		}
		answers = append(answers, map[string]string{"questionId": q.ID, "response": string(resp)})
	}
	return map[string]any{"answers": answers}
}

func TestEndpointsRequireCredential(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/interviews/questions"},
		{http.MethodPost, "/api/interviews"},
		{http.MethodGet, "/api/interviews"},
		{http.MethodGet, "/api/interviews/" + primitive.NewObjectID().Hex()},
	} {
		res, _ := doRequest(t, srv, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, res.StatusCode, "%s %s", tc.method, tc.path)
	}

	res, _ := doRequest(t, srv, http.MethodGet, "/api/interviews", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGetQuestions(t *testing.T) {
	srv := newTestServer(t)

	res, body := doRequest(t, srv, http.MethodGet, "/api/interviews/questions", tokenFor(t, "user-a"), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got []models.Question
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, questions.Catalog, got)
}

func TestSubmitReturnsHeuristicFeedback(t *testing.T) {
	srv := newTestServer(t)

	// Five answers of exactly ten characters: mean length 10 with weights
	// 0.6/0.9/0.7 yields 6/9/7.
	res, body := doRequest(t, srv, http.MethodPost, "/api/interviews", tokenFor(t, "user-a"), submitBody(10))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var result service.SubmitResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotEmpty(t, result.InterviewID)
	require.Equal(t, models.Scores{Communication: 6, ProblemSolving: 9, Empathy: 7}, result.Feedback.Scores)
	require.NotEmpty(t, result.Feedback.Explanations.Communication)
}

func TestSubmitWrongAnswerCount(t *testing.T) {
	srv := newTestServer(t)

	body := submitBody(20)
	body["answers"] = body["answers"].([]map[string]string)[:4]

	res, raw := doRequest(t, srv, http.MethodPost, "/api/interviews", tokenFor(t, "user-a"), body)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, string(raw), "All questions must be answered")
}

func TestSubmitUnknownQuestionID(t *testing.T) {
	srv := newTestServer(t)

	body := submitBody(20)
	body["answers"].([]map[string]string)[0]["questionId"] = "q42"

	res, raw := doRequest(t, srv, http.MethodPost, "/api/interviews", tokenFor(t, "user-a"), body)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, string(raw), "Invalid question ID")
}

func TestSubmitResponseTooShort(t *testing.T) {
	srv := newTestServer(t)

	res, raw := doRequest(t, srv, http.MethodPost, "/api/interviews", tokenFor(t, "user-a"), submitBody(9))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, string(raw), "response must be longer than or equal to 10 characters")
}

func TestSubmitMissingQuestionID(t *testing.T) {
	srv := newTestServer(t)

	body := submitBody(20)
	body["answers"].([]map[string]string)[3]["questionId"] = ""

	res, raw := doRequest(t, srv, http.MethodPost, "/api/interviews", tokenFor(t, "user-a"), body)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, string(raw), "questionId is required")
}

func TestSubmitMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/interviews", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-a"))

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDetailRoundTripAndOwnerIsolation(t *testing.T) {
	srv := newTestServer(t)
	tokenA := tokenFor(t, "user-a")
	tokenB := tokenFor(t, "user-b")

	res, body := doRequest(t, srv, http.MethodPost, "/api/interviews", tokenA, submitBody(30))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var result service.SubmitResult
	require.NoError(t, json.Unmarshal(body, &result))

	// Owner sees transcript and feedback.
	res, body = doRequest(t, srv, http.MethodGet, "/api/interviews/"+result.InterviewID, tokenA, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var detail service.InterviewDetail
	require.NoError(t, json.Unmarshal(body, &detail))
	require.Equal(t, result.InterviewID, detail.InterviewID)
	require.Equal(t, questions.Catalog, detail.Questions)
	require.Len(t, detail.Answers, 5)
	require.NotNil(t, detail.Feedback)

	// Another identity gets the same 404 as for a nonexistent id.
	res, raw := doRequest(t, srv, http.MethodGet, "/api/interviews/"+result.InterviewID, tokenB, nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Contains(t, string(raw), "Interview not found")

	res, _ = doRequest(t, srv, http.MethodGet, "/api/interviews/"+primitive.NewObjectID().Hex(), tokenB, nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHistoryOrderingAndScoping(t *testing.T) {
	srv := newTestServer(t)
	tokenA := tokenFor(t, "user-a")
	tokenB := tokenFor(t, "user-b")

	_, body := doRequest(t, srv, http.MethodPost, "/api/interviews", tokenA, submitBody(10))
	var first service.SubmitResult
	require.NoError(t, json.Unmarshal(body, &first))

	_, body = doRequest(t, srv, http.MethodPost, "/api/interviews", tokenA, submitBody(50))
	var second service.SubmitResult
	require.NoError(t, json.Unmarshal(body, &second))

	res, _ := doRequest(t, srv, http.MethodPost, "/api/interviews", tokenB, submitBody(20))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body = doRequest(t, srv, http.MethodGet, "/api/interviews", tokenA, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var entries []service.HistoryEntry
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, second.InterviewID, entries[0].InterviewID)
	require.Equal(t, first.InterviewID, entries[1].InterviewID)
	require.Equal(t, models.Scores{Communication: 6, ProblemSolving: 9, Empathy: 7}, entries[1].Scores)
}
