package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"draftforge/internal/types"
)

// OpenAIClient implements Client using the official openai-go SDK.
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

// OpenAIConfig holds configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewOpenAIClient creates an OpenAI-backed model client.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &OpenAIClient{model: cfg.Model, opts: opts}, nil
}

// Complete sends a prompt and returns the completion text and its cost.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, types.Cost, error) {
	return c.complete(ctx, systemPrompt, userPrompt, false)
}

// CompleteJSON uses the SDK's JSON object response mode, then unmarshals.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, out any) (types.Cost, error) {
	text, cost, err := c.complete(ctx, systemPrompt, userPrompt, true)
	if err != nil {
		return cost, err
	}
	return cost, unmarshalResponse(text, out)
}

func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, types.Cost, error) {
	client := openai.NewClient(c.opts...)

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(systemPrompt))
	}
	msgs = append(msgs, openai.UserMessage(userPrompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: msgs,
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", types.Cost{}, fmt.Errorf("openai completion failed: %w", err)
	}

	cost := CostFor(c.model, int(resp.Usage.PromptTokens), int(resp.Usage.CompletionTokens))

	if len(resp.Choices) == 0 {
		return "", cost, errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, cost, nil
}
