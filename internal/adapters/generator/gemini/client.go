package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"pet-symptom-triage/internal/ports/generator"
)

var (
	ErrNotConfigured = errors.New("gemini client not configured")
	ErrEmptyResponse = errors.New("gemini returned no candidates")
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // opcional, útil para tests/proxies

	HTTPClient *http.Client
}

// Client implementa generator.Generator con la API de Gemini,
// pidiendo application/json + ResponseSchema traducido del contrato.
type Client struct {
	cli   *genai.Client
	model string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}

	cc := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if u := strings.TrimSpace(cfg.BaseURL); u != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: u}
	}

	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{cli: cli, model: model}, nil
}

func (c *Client) Name() string { return "gemini:" + c.model }

func (c *Client) Generate(ctx context.Context, p generator.Prompt) (string, error) {
	if c == nil || c.cli == nil {
		return "", ErrNotConfigured
	}

	temp := p.Temperature
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: p.System}}},
		ResponseMIMEType:  "application/json",
		Temperature:       &temp,
	}
	if p.Contract != nil && p.Contract.Schema != nil {
		cfg.ResponseSchema = toGenaiSchema(p.Contract.Schema)
	}

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: p.User}}}},
		cfg,
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// toGenaiSchema traduce nuestro subconjunto de JSON Schema al Schema de genai.
// additionalProperties no existe en Gemini; se ignora.
func toGenaiSchema(s *generator.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}
	if s.MinItems != nil {
		v := int64(*s.MinItems)
		out.MinItems = &v
	}
	if s.MaxItems != nil {
		v := int64(*s.MaxItems)
		out.MaxItems = &v
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = toGenaiSchema(v)
		}
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case generator.TypeObject:
		return genai.TypeObject
	case generator.TypeArray:
		return genai.TypeArray
	case generator.TypeInteger:
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
