// Package assistant implements a minimal client for an OpenAI-compatible
// chat-completion API, supporting both atomic and streamed exchanges.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"intelplatform/internal/config"
	"intelplatform/internal/logger"
	"intelplatform/internal/utils"
	"intelplatform/models"
)

var (
	// ErrRequestFailed indicates a transport-level failure talking to the
	// chat-completion provider.
	ErrRequestFailed = errors.New("chat completion request failed")

	// ErrAPIError indicates the provider returned a non-2xx status or an
	// error envelope instead of a completion.
	ErrAPIError = errors.New("chat completion API error")

	// ErrEmptyCompletion indicates a well-formed response carrying no
	// choices.
	ErrEmptyCompletion = errors.New("chat completion returned no choices")
)

// Client talks to one OpenAI-compatible chat-completion endpoint with a
// fixed model. Safe for concurrent use.
type Client struct {
	client *utils.HTTPClient

	apiKey string
	model  string

	logger *logger.Logger
}

// NewClient constructs a chat-completion client from the assistant
// configuration. Returns an error if the base URL is empty or unparseable.
func NewClient(cfg config.Assistant, logger *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid assistant base URL: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &Client{
		client: client,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Complete performs one atomic chat-completion exchange and returns the full
// assistant reply. There is no retry; any transport or API failure fails the
// exchange.
func (c *Client) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	log := logger.FromContext(ctx)

	var (
		result   chatCompletionResponse
		errorRes apiError
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.apiKey).
		SetBody(chatCompletionRequest{Model: c.model, Messages: messages}).
		SetResult(&result).
		SetError(&errorRes).
		Post("/chat/completions")
	if err != nil {
		log.Err(err).Str("func", "*Client.Complete").Msg("chat completion request failed")
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if resp.IsError() {
		log.Error().
			Str("func", "*Client.Complete").
			Int("status", resp.StatusCode()).
			Str("message", errorRes.Message).
			Msg("chat completion API returned an error")
		return "", fmt.Errorf("%w: status %d: %s", ErrAPIError, resp.StatusCode(), errorRes.Message)
	}

	if result.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrAPIError, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return result.Choices[0].Message.Content, nil
}

// Stream starts a streamed chat-completion exchange and returns a pull
// iterator over the reply fragments. The returned stream must be closed by
// the caller. Any transport or API failure before the first fragment is
// returned here; failures mid-stream surface through [Stream.Err].
func (c *Client) Stream(ctx context.Context, messages []models.ChatMessage) (*Stream, error) {
	log := logger.FromContext(ctx)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "text/event-stream").
		SetAuthToken(c.apiKey).
		SetBody(chatCompletionRequest{Model: c.model, Messages: messages, Stream: true}).
		SetDoNotParseResponse(true).
		Post("/chat/completions")
	if err != nil {
		log.Err(err).Str("func", "*Client.Stream").Msg("chat completion request failed")
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	body := resp.RawBody()
	if resp.StatusCode() >= 300 {
		payload := readErrorBody(body)
		log.Error().
			Str("func", "*Client.Stream").
			Int("status", resp.StatusCode()).
			Str("body", payload).
			Msg("chat completion API returned an error")
		return nil, fmt.Errorf("%w: status %d: %s", ErrAPIError, resp.StatusCode(), payload)
	}

	return newStream(body), nil
}
