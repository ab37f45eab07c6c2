package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranslator translates with an OpenAI (or compatible) chat model
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance. baseURL may be empty
// for the public API.
func NewOpenAITranslator(apiKey, baseURL, model string) *OpenAITranslator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name returns the provider name
func (t *OpenAITranslator) Name() string { return "openai" }

// Translate sends the text as a single chat completion
func (t *OpenAITranslator) Translate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", ErrEmptyInput
	}
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	chatReq := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &ApplicationError{Code: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", &TransportError{Op: "openai chat completion", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &ApplicationError{Code: 0, Message: "no translation returned"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
