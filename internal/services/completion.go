package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// ChatMessage is a role-tagged message sent to the completion provider.
// Role is one of "system", "user" or "assistant".
type ChatMessage struct {
	Role    string
	Content string
}

// CompletionClient wraps an OpenAI-compatible chat completion API.
type CompletionClient struct {
	api    *openai.Client
	model  string
	logger zerolog.Logger
}

func NewCompletionClient(baseURL, apiKey, model string, logger zerolog.Logger) *CompletionClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &CompletionClient{
		api:    openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.With().Str("component", "completion").Logger(),
	}
}

// CompleteText sends a free-form completion request and returns the raw
// text content of the first choice.
func (c *CompletionClient) CompleteText(ctx context.Context, messages []ChatMessage, temperature float32) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", errors.New(apiErr.Message)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteStructured requests that the provider return a single JSON object
// as its entire content. Provider failures carry the reported error code and
// message to aid diagnosis.
func (c *CompletionClient) CompleteStructured(ctx context.Context, messages []ChatMessage, temperature float32) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("(%v): %s", apiErr.Code, apiErr.Message)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
