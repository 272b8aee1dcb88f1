package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/mindmend/internal/infra/llm/openrouter"
)

// Client adapts the Gemini API to the chat completion shape used by the
// advice domain, so Gemini models can sit in the same candidate list.
type Client struct {
	client *genai.Client
}

// NewClient builds a Gemini client. It returns (nil, nil) when apiKey is empty.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

// HasCredential reports whether the client was configured.
func (c *Client) HasCredential() bool {
	return c != nil && c.client != nil
}

// CreateChatCompletion sends system messages as the system instruction and
// the remaining messages as user/model turns.
func (c *Client) CreateChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
	if !c.HasCredential() {
		return openrouter.ChatCompletionResponse{}, errors.New("gemini api key is not configured")
	}
	system, contents := splitMessages(req.Messages)
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		config.Temperature = &temp
	}

	res, err := c.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return openrouter.ChatCompletionResponse{}, &openrouter.APIError{
				StatusCode: apiErr.Code,
				Message:    apiErr.Message,
			}
		}
		return openrouter.ChatCompletionResponse{}, fmt.Errorf("request gemini completion: %w", err)
	}

	out := openrouter.ChatCompletionResponse{Model: req.Model}
	if res.UsageMetadata != nil {
		out.Usage = openrouter.Usage{
			PromptTokens:     int(res.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(res.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(res.UsageMetadata.TotalTokenCount),
		}
	}
	// Blocked prompts come back with no candidates.
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return out, nil
	}
	var text strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	out.Choices = []openrouter.Choice{{
		Message:      openrouter.Message{Role: "assistant", Content: text.String()},
		FinishReason: string(res.Candidates[0].FinishReason),
	}}
	return out, nil
}

func splitMessages(messages []openrouter.Message) (string, []*genai.Content) {
	var (
		system   []string
		contents []*genai.Content
	)
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			system = append(system, msg.Content)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n"), contents
}
