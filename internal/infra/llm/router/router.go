package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanqian/mindmend/internal/infra/llm/openrouter"
)

// GeminiPrefix routes a candidate to the direct Gemini backend,
// e.g. "gemini:gemini-2.5-flash".
const GeminiPrefix = "gemini:"

// Backend is a single chat completion provider.
type Backend interface {
	CreateChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
	HasCredential() bool
}

// Router dispatches a completion request to a backend based on the model
// identifier. Unprefixed models go to the primary (OpenRouter) backend.
type Router struct {
	primary Backend
	gemini  Backend
}

// New builds a router. Either backend may be nil.
func New(primary, gemini Backend) *Router {
	return &Router{primary: primary, gemini: gemini}
}

// HasCredential reports whether any backend can serve requests.
func (r *Router) HasCredential() bool {
	return configured(r.primary) || configured(r.gemini)
}

// CreateChatCompletion forwards the request to the backend owning req.Model.
func (r *Router) CreateChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
	if model, ok := strings.CutPrefix(req.Model, GeminiPrefix); ok {
		if !configured(r.gemini) {
			return openrouter.ChatCompletionResponse{}, fmt.Errorf("gemini backend not configured for model %q", req.Model)
		}
		req.Model = model
		return r.gemini.CreateChatCompletion(ctx, req)
	}
	if !configured(r.primary) {
		return openrouter.ChatCompletionResponse{}, openrouter.ErrMissingAPIKey
	}
	return r.primary.CreateChatCompletion(ctx, req)
}

func configured(b Backend) bool {
	return b != nil && b.HasCredential()
}
