package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"pet-symptom-triage/internal/ports/generator"
)

var (
	ErrNotConfigured = errors.New("openai client not configured")
	ErrEmptyResponse = errors.New("openai returned no choices")
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // opcional: proxies/compatibles con la API de OpenAI

	HTTPClient *http.Client
}

// Client implementa generator.Generator usando Chat Completions con
// response_format json_schema.
type Client struct {
	client *goopenai.Client
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}

	oc := goopenai.DefaultConfig(key)
	if u := strings.TrimSpace(cfg.BaseURL); u != "" {
		oc.BaseURL = strings.TrimRight(u, "/")
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = goopenai.GPT4oMini
	}

	return &Client{
		client: goopenai.NewClientWithConfig(oc),
		model:  model,
	}, nil
}

func (c *Client) Name() string { return "openai:" + c.model }

func (c *Client) Generate(ctx context.Context, p generator.Prompt) (string, error) {
	if c == nil || c.client == nil {
		return "", ErrNotConfigured
	}

	req := goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: p.System},
			{Role: goopenai.ChatMessageRoleUser, Content: p.User},
		},
		Temperature: p.Temperature,
	}
	if p.Contract != nil && p.Contract.Schema != nil {
		req.ResponseFormat = responseFormat(p.Contract)
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// responseFormat traduce el contrato al formato json_schema de OpenAI.
// Strict queda en false: el modo estricto no acepta minItems/maxItems,
// y esos límites los valida el gateway de todas formas.
func responseFormat(c *generator.Contract) *goopenai.ChatCompletionResponseFormat {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "output"
	}
	return &goopenai.ChatCompletionResponseFormat{
		Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
			Name:        name,
			Description: c.Description,
			Schema:      c.Schema.JSON(),
			Strict:      false,
		},
	}
}
