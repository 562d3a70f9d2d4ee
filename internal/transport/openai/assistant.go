package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/staylens/staylens/internal/domain"
	"github.com/staylens/staylens/internal/domain/chat"
	"github.com/staylens/staylens/internal/metrics"
)

// Assistant drives chat completions with tool calling against an
// OpenAI-compatible API.
type Assistant struct {
	client      *openai.Client
	model       string
	temperature float32
	maxRetries  int
	logger      *zap.Logger
}

// AssistantConfig holds the chat model settings.
type AssistantConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxRetries  int
	Logger      *zap.Logger
}

// NewAssistant creates an OpenAI-compatible chat completion client.
func NewAssistant(cfg *AssistantConfig) *Assistant {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Assistant{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxRetries:  cfg.MaxRetries,
		logger:      cfg.Logger,
	}
}

// Complete implements chat.Assistant. Transient provider failures are
// retried with exponential backoff.
func (a *Assistant) Complete(
	ctx context.Context, messages []chat.Message, tools []chat.ToolSchema,
) (*chat.Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    toAPIMessages(messages),
		Temperature: a.temperature,
	}
	if len(tools) > 0 {
		req.Tools = toAPITools(tools)
	}

	var completion *chat.Completion
	op := func() error {
		var err error
		completion, err = a.completeOnce(ctx, req)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(a.maxRetries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return completion, nil
}

func (a *Assistant) completeOnce(
	ctx context.Context, req openai.ChatCompletionRequest,
) (*chat.Completion, error) {
	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "error").Inc()
		wrapped := parseAssistantError(err)
		if !retryable(err) {
			return nil, backoff.Permanent(wrapped)
		}
		return nil, wrapped
	}

	if len(resp.Choices) == 0 {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return nil, backoff.Permanent(
			fmt.Errorf("empty completion response: %w", domain.ErrAssistantUnavailable))
	}

	metrics.AssistantRequestsTotal.WithLabelValues(a.model, "success").Inc()
	metrics.AssistantRequestDuration.WithLabelValues(a.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.AssistantTokensTotal.WithLabelValues(a.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.AssistantTokensTotal.WithLabelValues(a.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	return fromAPIChoice(resp.Choices[0]), nil
}

func toAPIMessages(messages []chat.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		apiMsg := openai.ChatCompletionMessage{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, req := range m.Requests {
			apiMsg.ToolCalls = append(apiMsg.ToolCalls, openai.ToolCall{
				ID:   req.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      req.Name,
					Arguments: string(req.Args),
				},
			})
		}
		out = append(out, apiMsg)
	}
	return out
}

func toAPITools(tools []chat.ToolSchema) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

func fromAPIChoice(choice openai.ChatCompletionChoice) *chat.Completion {
	completion := &chat.Completion{Content: choice.Message.Content}
	for _, call := range choice.Message.ToolCalls {
		completion.Requests = append(completion.Requests, chat.ToolRequest{
			ID:   call.ID,
			Name: call.Function.Name,
			Args: json.RawMessage(call.Function.Arguments),
		})
	}
	return completion
}

// parseAssistantError extracts a readable message from the API response.
// All errors wrap domain.ErrAssistantUnavailable for correct 502 mapping.
func parseAssistantError(err error) error {
	wrap := domain.ErrAssistantUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("completion API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("completion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("completion request failed: %w", wrap)
}
