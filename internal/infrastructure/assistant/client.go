// Package assistant talks to an OpenAI-compatible chat completions backend
// (OpenRouter in production) on behalf of the chat usecase.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	hclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/jmar008/dealaai/internal/config"
	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

type client struct {
	hc           *hclient.Client
	baseURL      string
	apiKey       string
	model        string
	systemPrompt string
	logger       *slog.Logger
}

// NewClient creates the assistant client. A nil return means the HTTP
// client could not be constructed; the caller treats that as fatal.
func NewClient(cfg config.AssistantConfig, logger *slog.Logger) domain.AssistantClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	hc, err := hclient.NewClient(
		hclient.WithDialTimeout(10*time.Second),
		hclient.WithClientReadTimeout(timeout),
		hclient.WithMaxIdleConnDuration(60*time.Second),
	)
	if err != nil {
		logger.Error("failed to create assistant http client", "error", err)
		return nil
	}

	logger.Info("assistant client created", "base_url", cfg.BaseURL, "model", cfg.Model)

	return &client{
		hc:           hc,
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		logger:       logger,
	}
}

// Wire types for the chat completions API.
type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *client) Complete(ctx context.Context, messages []*entity.Message) (*domain.AssistantReply, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("completion requires at least one message")
	}

	wireMessages := make([]completionMessage, 0, len(messages)+1)
	if c.systemPrompt != "" {
		wireMessages = append(wireMessages, completionMessage{
			Role:    entity.RoleSystem,
			Content: c.systemPrompt,
		})
	}
	for _, msg := range messages {
		wireMessages = append(wireMessages, completionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	bodyBytes, err := sonic.Marshal(completionRequest{
		Model:    c.model,
		Messages: wireMessages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.baseURL + "/chat/completions")
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.SetBody(bodyBytes)

	if err := c.hc.Do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("assistant request failed: %w", err)
	}

	if resp.StatusCode() != consts.StatusOK {
		return nil, fmt.Errorf("assistant returned HTTP %d: %s",
			resp.StatusCode(), string(resp.Body()))
	}

	var completion completionResponse
	if err := sonic.Unmarshal(resp.Body(), &completion); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assistant response: %w", err)
	}
	if completion.Error != nil {
		return nil, fmt.Errorf("assistant error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("assistant returned no choices")
	}

	c.logger.Debug("assistant completion received",
		"model", completion.Model,
		"tokens", completion.Usage.TotalTokens,
	)

	return &domain.AssistantReply{
		Content:    completion.Choices[0].Message.Content,
		TokensUsed: completion.Usage.TotalTokens,
		Model:      completion.Model,
	}, nil
}
