// Package assistant talks to the language-model provider that turns a
// natural-language description into a diagram response.
//
// The provider is an external collaborator: this package owns only the
// narrow interface the pipeline consumes ([Generator]) and an OpenAI-backed
// implementation. Everything downstream of the returned response text -
// extraction, validation, layout - lives in the core packages and treats
// the text as untrusted.
package assistant

import (
	"context"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/davidblanc347/parodesign/pkg/errors"
	"github.com/davidblanc347/parodesign/pkg/observability"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// APIKeyEnv is the environment variable holding the provider API key.
const APIKeyEnv = "OPENAI_API_KEY"

// Generator produces one assistant response for one user turn.
// Implementations must be safe for concurrent use; the serving host may
// run turns for different sessions in parallel.
type Generator interface {
	Generate(ctx context.Context, description string) (string, error)
}

// Client is the OpenAI-backed Generator.
type Client struct {
	client *openai.Client
	model  string
}

// Config configures the assistant client.
type Config struct {
	APIKey string // falls back to the OPENAI_API_KEY environment variable
	Model  string // falls back to DefaultModel
}

// New creates an assistant client.
// Returns ErrCodeInvalidInput when no API key is available.
func New(cfg Config) (*Client, error) {
	key := cfg.APIKey
	if key == "" {
		key = strings.TrimSpace(os.Getenv(APIKeyEnv))
	}
	if key == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no API key: set %s or configure assistant.api_key", APIKeyEnv)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: openai.NewClient(key),
		model:  model,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends one chat completion request and returns the raw response
// text. The response may or may not contain a marker-delimited diagram
// block; deciding that is the extractor's job, not this package's.
func (c *Client) Generate(ctx context.Context, description string) (string, error) {
	observability.Assistant().OnRequest(ctx, c.model)
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: description},
		},
	})
	observability.Assistant().OnResponse(ctx, c.model, time.Since(start), err)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAssistant, err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.ErrCodeAssistant, "provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Ensure Client implements Generator.
var _ Generator = (*Client)(nil)
