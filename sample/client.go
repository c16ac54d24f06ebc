// Package sample fetches a sample logic-tree prompt from a chat completion
// endpoint.
package sample

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	// Prompt asks the model for one sample logic-tree problem.
	Prompt = "ロジックツリーのサンプル問題を1つ作成してください。"

	// ErrorMessage is returned by Fetch in place of content on any failure.
	ErrorMessage = "エラーが発生しました。もう一度お試しください。"

	DefaultModel     = openai.GPT3Dot5Turbo
	DefaultMaxTokens = 100
)

// ErrEmptyResponse indicates the endpoint returned no choices.
var ErrEmptyResponse = errors.New("completion returned no choices")

// Settings is the endpoint configuration for one request.
type Settings struct {
	URL       string // Full chat completion URL
	APIKey    string // Bearer token
	Model     string
	MaxTokens int
}

// SettingsFunc is called on every request so the endpoint and token are
// read at call time.
type SettingsFunc func() Settings

// Client calls the completion endpoint.
type Client struct {
	settings   SettingsFunc
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(settings SettingsFunc, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		settings:   settings,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Complete sends the sample prompt and returns the trimmed content of the
// first choice.
func (c *Client) Complete(ctx context.Context) (string, error) {
	s := c.settings()
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = DefaultMaxTokens
	}

	endpoint, err := url.Parse(s.URL)
	if err != nil {
		return "", fmt.Errorf("invalid completion endpoint %q: %w", s.URL, err)
	}

	cfg := openai.DefaultConfig(s.APIKey)
	cfg.HTTPClient = &endpointDoer{endpoint: endpoint, client: c.httpClient}
	client := openai.NewClientWithConfig(cfg)

	req := openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Prompt,
			},
		},
		MaxTokens: s.MaxTokens,
	}

	c.logger.Debug("requesting sample", zap.String("model", s.Model), zap.String("endpoint", endpoint.Redacted()))
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Fetch is Complete with failures replaced by ErrorMessage. It never
// returns an error.
func (c *Client) Fetch(ctx context.Context) string {
	content, err := c.Complete(ctx)
	if err != nil {
		c.logger.Error("error fetching logic tree sample", zap.Error(err))
		return ErrorMessage
	}
	return content
}

// endpointDoer posts every request to one configured URL. The OpenAI
// client builds its own path from a base URL; the endpoint here is used
// verbatim, query string included.
type endpointDoer struct {
	endpoint *url.URL
	client   *http.Client
}

func (d *endpointDoer) Do(req *http.Request) (*http.Response, error) {
	target := *d.endpoint
	req.URL = &target
	req.Host = target.Host
	return d.client.Do(req)
}
