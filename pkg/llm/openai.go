package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type openaiClient struct {
	client      *openai.Client
	logger      *slog.Logger
	model       string
	temperature float64
	maxTokens   int64
	maxAttempts uint
	configured  bool
}

// New creates an OpenAI-backed Client. A missing credential does not fail
// construction; completion calls return ErrNotConfigured instead.
func New(cfg *Config, logger *slog.Logger) Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &openaiClient{
		client:      &client,
		logger:      logger.With("system", "llm"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxAttempts: cfg.MaxAttempts,
		configured:  cfg.APIKey != "",
	}
}

func (c *openaiClient) Configured() bool {
	return c.configured
}

func (c *openaiClient) Complete(ctx context.Context, req Request) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	params := c.buildParams(req)

	var content string
	err := retry.Do(
		func() error {
			start := time.Now()

			resp, err := c.client.Chat.Completions.New(ctx, params)
			if err != nil {
				return fmt.Errorf("chat completion: %w", err)
			}

			if len(resp.Choices) == 0 {
				return ErrEmptyCompletion
			}

			content = strings.TrimSpace(resp.Choices[0].Message.Content)
			if content == "" {
				return ErrEmptyCompletion
			}

			c.logger.Info(
				"completion received",
				"model", resp.Model,
				"total_tokens", resp.Usage.TotalTokens,
				"duration", time.Since(start),
			)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxAttempts),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}

	return content, nil
}

func (c *openaiClient) buildParams(req Request) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	temperature := c.temperature
	if req.Temperature > 0 {
		temperature = req.Temperature
	}

	maxTokens := c.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       shared.ChatModel(c.model),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	}

	if req.JSONResponse {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return params
}
