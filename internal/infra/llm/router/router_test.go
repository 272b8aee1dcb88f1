package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/mindmend/internal/infra/llm/openrouter"
)

func TestRouterDispatchesByPrefix(t *testing.T) {
	primary := &recordingBackend{name: "primary", ready: true}
	gemini := &recordingBackend{name: "gemini", ready: true}
	r := New(primary, gemini)

	resp, err := r.CreateChatCompletion(context.Background(), openrouter.ChatCompletionRequest{Model: "gemini:gemini-2.5-flash"})
	require.NoError(t, err)
	require.Equal(t, "gemini", resp.Model)
	require.Equal(t, []string{"gemini-2.5-flash"}, gemini.models)

	resp, err = r.CreateChatCompletion(context.Background(), openrouter.ChatCompletionRequest{Model: "google/gemma-2-9b-it:free"})
	require.NoError(t, err)
	require.Equal(t, "primary", resp.Model)
	require.Equal(t, []string{"google/gemma-2-9b-it:free"}, primary.models)
}

func TestRouterCredentials(t *testing.T) {
	require.False(t, New(nil, nil).HasCredential())
	require.False(t, New(&recordingBackend{}, nil).HasCredential())
	require.True(t, New(nil, &recordingBackend{ready: true}).HasCredential())

	_, err := New(nil, &recordingBackend{ready: true}).CreateChatCompletion(context.Background(), openrouter.ChatCompletionRequest{Model: "mistralai/mistral-7b-instruct:free"})
	require.ErrorIs(t, err, openrouter.ErrMissingAPIKey)

	_, err = New(&recordingBackend{ready: true}, nil).CreateChatCompletion(context.Background(), openrouter.ChatCompletionRequest{Model: "gemini:gemini-2.5-flash"})
	require.Error(t, err)
}

type recordingBackend struct {
	name   string
	ready  bool
	models []string
}

func (b *recordingBackend) HasCredential() bool { return b.ready }

func (b *recordingBackend) CreateChatCompletion(_ context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
	b.models = append(b.models, req.Model)
	return openrouter.ChatCompletionResponse{Model: b.name}, nil
}
