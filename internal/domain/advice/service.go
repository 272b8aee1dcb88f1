package advice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/mindmend/internal/infra/llm/openrouter"
	"github.com/yanqian/mindmend/pkg/metrics"
)

// Requester produces short coaching messages for logged moods.
type Requester interface {
	// RequestAdvice returns the coaching text, or ok=false when no candidate
	// produced one. It never fails.
	RequestAdvice(ctx context.Context, req Request) (string, bool)
	// Consult runs the same sweep and returns every attempt made. Once ctx
	// is done no further candidates are tried.
	Consult(ctx context.Context, req Request) Outcome
	// Candidates returns a copy of the configured candidate order.
	Candidates() []string
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
	HasCredential() bool
}

// NoteTrimmer bounds user notes to a token budget before prompting.
type NoteTrimmer interface {
	Truncate(text string, maxTokens int) string
}

type service struct {
	cfg        Config
	candidates []string
	client     ChatClient
	trimmer    NoteTrimmer
	logger     *slog.Logger
	now        func() time.Time
}

// NewService wires up the advice domain. client and trimmer may be nil.
func NewService(cfg Config, client ChatClient, trimmer NoteTrimmer, logger *slog.Logger) Requester {
	return &service{
		cfg:        cfg,
		candidates: append([]string(nil), cfg.Candidates...),
		client:     client,
		trimmer:    trimmer,
		logger:     logger.With("component", "advice.service"),
		now:        time.Now,
	}
}

func (s *service) Candidates() []string {
	return append([]string(nil), s.candidates...)
}

func (s *service) RequestAdvice(ctx context.Context, req Request) (string, bool) {
	out := s.Consult(ctx, req)
	return out.Advice, out.OK
}

// Consult tries candidates in order and stops at the first usable completion.
// A cancelled or expired ctx ends the sweep before the next candidate instead
// of running the remaining list to completion; callers bound the whole sweep
// through ctx.
func (s *service) Consult(ctx context.Context, req Request) Outcome {
	if s.client == nil || !s.client.HasCredential() {
		s.logger.Error("advice disabled: llm api key missing")
		return Outcome{Skipped: SkipNoCredential}
	}
	mood := strings.TrimSpace(req.Mood)
	if mood == "" {
		s.logger.Warn("advice skipped: empty mood")
		return Outcome{Skipped: SkipEmptyMood}
	}

	messages := []openrouter.Message{
		{Role: "system", Content: s.systemPrompt()},
		{Role: "user", Content: s.userPrompt(mood, req.Notes)},
	}

	attempts := make([]Attempt, 0, len(s.candidates))
	for _, model := range s.candidates {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("advice sweep stopped", "error", err, "attempts", len(attempts))
			break
		}
		s.logger.Debug("advice trying candidate", "model", model)
		text, attempt := s.try(ctx, model, messages)
		attempts = append(attempts, attempt)
		if attempt.Outcome == OutcomeSuccess {
			s.logger.Info("advice generated", "model", model, "attempts", len(attempts), "latency_ms", attempt.LatencyMs)
			return Outcome{Advice: text, OK: true, Attempts: attempts}
		}
		s.logger.Warn("advice candidate failed", "model", model, "outcome", attempt.Outcome, "status", attempt.StatusCode, "reason", attempt.Reason)
	}

	s.logger.Error("advice unavailable: all candidates failed", "attempts", len(attempts))
	return Outcome{Attempts: attempts}
}

func (s *service) try(ctx context.Context, model string, messages []openrouter.Message) (string, Attempt) {
	start := s.now()
	resp, err := s.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	})
	attempt := Attempt{
		Model:     model,
		LatencyMs: s.now().Sub(start).Milliseconds(),
	}
	if err != nil {
		classifyError(&attempt, err)
		return "", attempt
	}
	attempt.Usage = metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	content, ok := resp.FirstContent()
	if !ok {
		attempt.Outcome = OutcomeEmptyResponse
		attempt.Reason = "no choices returned"
		return "", attempt
	}
	text := strings.TrimSpace(content)
	if text == "" {
		attempt.Outcome = OutcomeEmptyResponse
		attempt.Reason = "blank completion"
		return "", attempt
	}
	attempt.Outcome = OutcomeSuccess
	return text, attempt
}

func classifyError(attempt *Attempt, err error) {
	attempt.Reason = err.Error()
	var apiErr *openrouter.APIError
	switch {
	case errors.As(err, &apiErr):
		attempt.Outcome = OutcomeBadStatus
		attempt.StatusCode = apiErr.StatusCode
	case errors.Is(err, openrouter.ErrMalformedResponse):
		attempt.Outcome = OutcomeMalformedResponse
	default:
		attempt.Outcome = OutcomeTransportError
	}
}

func (s *service) systemPrompt() string {
	prompt := strings.TrimSpace(s.cfg.SystemPrompt)
	if prompt == "" {
		return DefaultSystemPrompt
	}
	return prompt
}

func (s *service) userPrompt(mood, notes string) string {
	notes = strings.TrimSpace(notes)
	if notes != "" && s.trimmer != nil && s.cfg.MaxNoteTokens > 0 {
		notes = s.trimmer.Truncate(notes, s.cfg.MaxNoteTokens)
	}
	if notes == "" {
		return fmt.Sprintf("I am feeling %s.", mood)
	}
	return fmt.Sprintf("I am feeling %s. Context: %s", mood, notes)
}
