package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/metrics"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/models"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/questions"
)

const defaultBaseURL = "https://api.openai.com/v1"

// chatRequest is the minimal request shape for the Chat Completions endpoint.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is the minimal response shape returned by the endpoint.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// analysisPayload is the strict shape the model is instructed to return.
// Scores arrive as raw numbers and are clamped; explanations default to ""
// when the model omits or nulls a field.
type analysisPayload struct {
	Scores struct {
		Communication  float64 `json:"communication"`
		ProblemSolving float64 `json:"problemSolving"`
		Empathy        float64 `json:"empathy"`
	} `json:"scores"`
	Explanations struct {
		Communication  string `json:"communication"`
		ProblemSolving string `json:"problemSolving"`
		Empathy        string `json:"empathy"`
	} `json:"explanations"`
}

// OpenAI evaluates answers with a chat-completions call. Every failure mode
// degrades to the heuristic variant; Score never reports an error.
type OpenAI struct {
	apiKey       string
	model        string
	temperature  *float64
	baseURL      string
	httpClient   *http.Client
	systemPrompt string
	fallback     *Heuristic
}

type Option func(*OpenAI)

func WithBaseURL(baseURL string) Option {
	return func(s *OpenAI) {
		s.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *OpenAI) {
		s.httpClient = httpClient
	}
}

// NewOpenAI builds the model-backed scorer. temperature is forwarded
// verbatim when non-nil and omitted otherwise.
func NewOpenAI(apiKey, model string, temperature *float64, opts ...Option) *OpenAI {
	s := &OpenAI{
		apiKey:       apiKey,
		model:        model,
		temperature:  temperature,
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		systemPrompt: buildSystemPrompt(),
		fallback:     NewHeuristic(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *OpenAI) Score(ctx context.Context, answers []models.Answer) models.Analysis {
	if s.apiKey == "" {
		return s.fallbackWith(ctx, answers, "missing_key", "no API key configured")
	}

	content, reason, err := s.complete(ctx, answers)
	if err != nil {
		return s.fallbackWith(ctx, answers, reason, err.Error())
	}
	if strings.TrimSpace(content) == "" {
		return s.fallbackWith(ctx, answers, "empty_content", "model returned empty content")
	}

	var parsed analysisPayload
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return s.fallbackWith(ctx, answers, "invalid_json", "model returned invalid JSON: "+err.Error())
	}

	return models.Analysis{
		Scores: models.Scores{
			Communication:  clampScore(parsed.Scores.Communication),
			ProblemSolving: clampScore(parsed.Scores.ProblemSolving),
			Empathy:        clampScore(parsed.Scores.Empathy),
		},
		Explanations: models.Explanations{
			Communication:  parsed.Explanations.Communication,
			ProblemSolving: parsed.Explanations.ProblemSolving,
			Empathy:        parsed.Explanations.Empathy,
		},
	}
}

// fallbackWith logs the degradation cause and delegates to the heuristic.
// The caller never sees the failure.
func (s *OpenAI) fallbackWith(ctx context.Context, answers []models.Answer, reason, detail string) models.Analysis {
	log.Printf("Warning: scoring fell back to heuristic (%s): %s", reason, detail)
	metrics.ScoringFallbacks.WithLabelValues(reason).Inc()
	return s.fallback.Score(ctx, answers)
}

// complete performs the chat-completions call and returns the raw message
// content, or the failed check's name and error.
func (s *OpenAI) complete(ctx context.Context, answers []models.Answer) (content, reason string, err error) {
	payload, err := json.Marshal(map[string]any{"answers": answers})
	if err != nil {
		return "", "request_failed", fmt.Errorf("marshal answers: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: s.systemPrompt},
			{Role: "user", Content: string(payload)},
		},
		Temperature:    s.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", "request_failed", fmt.Errorf("marshal request: %w", err)
	}

	url := s.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", "request_failed", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return "", "request_failed", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", "request_failed", fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		excerpt := string(raw)
		if len(excerpt) > 512 {
			excerpt = excerpt[:512]
		}
		return "", "bad_status", fmt.Errorf("unexpected status %d: %s", res.StatusCode, excerpt)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", "empty_content", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", "empty_content", fmt.Errorf("no choices in response")
	}
	return parsed.Choices[0].Message.Content, "", nil
}

// buildSystemPrompt embeds the canonical question texts and the strict
// output schema instruction.
func buildSystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an interview feedback evaluator. The questions for the interview mapped from q1 to q5 are as below:\n")
	for _, q := range questions.Catalog {
		fmt.Fprintf(&b, "%s: %s\n", q.ID, q.Text)
	}
	b.WriteString(`
Return ONLY valid JSON matching this exact schema:
{
  "scores": { "communication": int(0-100), "problemSolving": int(0-100), "empathy": int(0-100) },
  "explanations": {
    "communication": "1-2 simple sentences for the candidate",
    "problemSolving": "1-2 simple sentences for the candidate",
    "empathy": "1-2 simple sentences for the candidate"
  }
}

Rules:
- integers only for scores
- be constructive and clear
- explanations must relate to answers
- be kind while providing feedback
- no extra keys`)
	return b.String()
}
