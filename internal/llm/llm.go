package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pavelanni/schreiben/internal/grammar"
	"github.com/pavelanni/schreiben/internal/llm/prompts"
	"github.com/pavelanni/schreiben/internal/model"
)

// Client checks essays with an OpenAI-compatible chat model. It satisfies
// grammar.Checker.
type Client struct {
	api      chatAPI
	model    string
	language string
}

// chatAPI is the subset of the go-openai client we call.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// New creates a new LLM checker client.
func New(baseURL, apiKey, modelName, language string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if language == "" {
		language = grammar.DefaultLanguage
	}
	return &Client{
		api:      openai.NewClientWithConfig(config),
		model:    modelName,
		language: language,
	}
}

// Ping verifies that the endpoint answers and knows the configured model.
func (c *Client) Ping(ctx context.Context) error {
	models, err := c.api.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, m := range models.Models {
		if m.ID == c.model {
			return nil
		}
	}
	slog.Warn("model not listed by endpoint", "model", c.model, "available", len(models.Models))
	return nil
}

// Check asks the model for grammar issues. Every failure wraps
// model.ErrCheckFailed.
func (c *Client) Check(ctx context.Context, text string) ([]model.GrammarIssue, error) {
	prompt, err := prompts.BuildCheckPrompt(c.language, text)
	if err != nil {
		return nil, fmt.Errorf("%w: build prompt: %w", model.ErrCheckFailed, err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: LLM API call: %v", model.ErrCheckFailed, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: LLM returned no choices", model.ErrCheckFailed)
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "raw", raw)

	issues, err := parseMatches(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrCheckFailed, err)
	}
	return issues, nil
}

// parseMatches decodes a LanguageTool-shaped reply and normalizes it.
func parseMatches(raw string) ([]model.GrammarIssue, error) {
	out, err := grammar.ParseResponse([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("parse LLM response: %w (raw: %s)", err, raw)
	}
	return out.Issues(), nil
}
