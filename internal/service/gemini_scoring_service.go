package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/mockview/practice-api/config"
	"github.com/mockview/practice-api/internal/apperror"
	"github.com/mockview/practice-api/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ScoringResult is the parsed outcome of one scoring call. Raw carries the
// provider's verbatim text for persistence alongside the answer.
type ScoringResult struct {
	Score    float64
	Feedback model.Feedback
	Raw      string
}

// ScoringService is the boundary to the external AI scorer. It owns the
// request/response contract only; the scoring itself happens upstream.
type ScoringService interface {
	Score(ctx context.Context, question *model.Question, userAnswer string) (*ScoringResult, error)
}

type geminiScoringService struct {
	client  *genai.GenerativeModel
	timeout time.Duration
}

func NewGeminiScoringService(cfg *config.Config) (ScoringService, error) {
	timeout := time.Duration(cfg.Scoring.TimeoutSeconds) * time.Second
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Scoring service will be non-functional.")
		return &geminiScoringService{client: nil, timeout: timeout}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiScoringService{
		client:  client.GenerativeModel(cfg.Scoring.Model),
		timeout: timeout,
	}, nil
}

func (s *geminiScoringService) Score(ctx context.Context, question *model.Question, userAnswer string) (*ScoringResult, error) {
	if s.client == nil {
		return nil, apperror.Upstream(nil, "scoring provider is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildScoringPrompt(question, userAnswer)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Gemini API error during scoring")
		return nil, apperror.Upstream(err, "scoring provider call failed")
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, apperror.Upstream(nil, "scoring provider returned no content")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}
	if raw.Len() == 0 {
		return nil, apperror.Upstream(nil, "scoring provider returned no text content")
	}

	result, err := parseScoringResponse(raw.String())
	if err != nil {
		log.Warn().Err(err).Uint("questionID", question.ID).Str("rawResponse", raw.String()).
			Msg("Scoring response did not match the feedback contract")
		return nil, err
	}
	return result, nil
}

func buildScoringPrompt(question *model.Question, userAnswer string) string {
	var b strings.Builder
	b.WriteString("You are an experienced technical interviewer evaluating a candidate's answer in a mock interview.\n\n")
	b.WriteString("Interview question:\n---\n")
	b.WriteString(question.Content)
	b.WriteString("\n---\n\n")
	if question.SampleAnswer != nil && *question.SampleAnswer != "" {
		b.WriteString("Reference answer (for your calibration only, the candidate has not seen it):\n---\n")
		b.WriteString(*question.SampleAnswer)
		b.WriteString("\n---\n\n")
	}
	b.WriteString("Candidate's answer:\n---\n")
	b.WriteString(userAnswer)
	b.WriteString("\n---\n\n")
	b.WriteString("Evaluate correctness, depth, structure and communication. ")
	b.WriteString("Respond with a single JSON object and nothing else, no markdown fences, in exactly this shape:\n")
	b.WriteString(`{"score": <number 0-100>, "overall": "<one-paragraph assessment>", "strengths": ["<statement>", ...], "improvements": ["<statement>", ...]}` + "\n")
	b.WriteString("strengths and improvements may be empty arrays but must be present.\n")
	return b.String()
}

// scoringPayload is the wire shape the provider is instructed to produce.
type scoringPayload struct {
	Score        *float64 `json:"score"`
	Overall      *string  `json:"overall"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// parseScoringResponse decodes the provider text into the feedback contract.
// Any deviation is a schema error, distinct from transport failures, so
// callers can tell "provider down" from "provider answered garbage".
func parseScoringResponse(raw string) (*ScoringResult, error) {
	cleaned := stripCodeFence(raw)

	var payload scoringPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, apperror.Schema(err, "scoring response is not valid JSON")
	}
	if payload.Score == nil {
		return nil, apperror.Schema(nil, "scoring response is missing the score field")
	}
	if payload.Overall == nil || strings.TrimSpace(*payload.Overall) == "" {
		return nil, apperror.Schema(nil, "scoring response is missing the overall narrative")
	}

	feedback := model.Feedback{
		Overall:      strings.TrimSpace(*payload.Overall),
		Strengths:    payload.Strengths,
		Improvements: payload.Improvements,
	}
	// Absent lists decode as nil; the contract treats them as empty.
	if feedback.Strengths == nil {
		feedback.Strengths = []string{}
	}
	if feedback.Improvements == nil {
		feedback.Improvements = []string{}
	}

	return &ScoringResult{
		Score:    *payload.Score,
		Feedback: feedback,
		Raw:      cleaned,
	}, nil
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models add despite instructions.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
