package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOpenAITimeout = 60 * time.Second
)

// OpenAIConfig holds the provider settings injected at startup
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type openAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient returns nil when no API key is configured.
// Callers treat a nil client as "AI disabled".
func NewOpenAIClient(cfg OpenAIConfig, logger *zap.Logger) LLMClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn("OPENAI_API_KEY not configured, /ai endpoints are disabled")
		return nil
	}

	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultOpenAITimeout
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &openAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger,
	}
}

func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for i, m := range req.Messages {
		msg := openai.ChatCompletionMessage{Role: m.Role}
		if req.ImageURL != "" && i == len(req.Messages)-1 {
			msg.MultiContent = []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: m.Content},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    req.ImageURL,
						Detail: openai.ImageURLDetailAuto,
					},
				},
			}
		} else {
			msg.Content = m.Content
		}
		messages = append(messages, msg)
	}

	request := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	c.logger.Debug("openai completion request",
		zap.String("model", c.model),
		zap.Int("messages", len(messages)),
		zap.Bool("image", req.ImageURL != ""),
	)

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", NewInvalidResponseError("no choices returned from OpenAI API", nil)
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("openai completion received", zap.Int("length", len(content)))

	return content, nil
}

func classifyOpenAIError(err error) error {
	if isTimeout(err) {
		return NewTimeoutError("OpenAI request timed out", err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewUpstreamError(apiErr.HTTPStatusCode,
			fmt.Sprintf("OpenAI API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message))
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewUpstreamError(reqErr.HTTPStatusCode,
			fmt.Sprintf("OpenAI request failed (status %d)", reqErr.HTTPStatusCode))
	}

	return NewNetworkError("failed to reach OpenAI", err)
}
