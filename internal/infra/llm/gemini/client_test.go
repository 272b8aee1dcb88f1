package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/yanqian/mindmend/internal/infra/llm/openrouter"
)

func TestSplitMessages(t *testing.T) {
	system, contents := splitMessages([]openrouter.Message{
		{Role: "system", Content: "be kind"},
		{Role: "user", Content: "I am feeling Tired."},
		{Role: "assistant", Content: "Rest a moment."},
	})
	require.Equal(t, "be kind", system)
	require.Len(t, contents, 2)
	require.Equal(t, string(genai.RoleUser), contents[0].Role)
	require.Equal(t, "I am feeling Tired.", contents[0].Parts[0].Text)
	require.Equal(t, string(genai.RoleModel), contents[1].Role)
}

func TestNewClientWithoutKey(t *testing.T) {
	client, err := NewClient(context.Background(), "  ")
	require.NoError(t, err)
	require.Nil(t, client)
	require.False(t, client.HasCredential())
}
