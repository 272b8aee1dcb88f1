package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateChatCompletionSendsHeadersAndDecodes(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.Equal(t, "https://mindmend.app", r.Header.Get("HTTP-Referer"))
		require.Equal(t, "MindMend", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Breathe slowly."}}],"usage":{"prompt_tokens":12,"completion_tokens":3,"total_tokens":15}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", BaseURL: server.URL + "/", Referer: "https://mindmend.app", Title: "MindMend"})
	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "meta-llama/llama-3.2-3b-instruct:free",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	require.Equal(t, "meta-llama/llama-3.2-3b-instruct:free", got.Model)
	content, ok := resp.FirstContent()
	require.True(t, ok)
	require.Equal(t, "Breathe slowly.", content)
	require.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestCreateChatCompletionStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited upstream"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", BaseURL: server.URL})
	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Equal(t, "rate limited upstream", apiErr.Message)
	require.True(t, apiErr.Retryable())
}

func TestCreateChatCompletionMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", BaseURL: server.URL})
	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCreateChatCompletionWithoutKey(t *testing.T) {
	client := NewClient(Config{})
	require.False(t, client.HasCredential())

	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}
