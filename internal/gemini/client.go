package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/kpauljoseph/studykit/pkg/logger"
)

const DefaultModel = "gemini-1.5-flash"

// Client wraps the generative-language backend. It is the only component
// that talks to the genai SDK; everything above it works with plain text
// and typed errors.
type Client struct {
	client      *genai.Client
	modelName   string
	temperature float32
	logger      *logger.Logger
}

func NewClient(ctx context.Context, apiKey string, modelName string, temperature float32, log *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
		logger:      log,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateJSON issues a structured-output request. When schema is non-nil the
// model is constrained to a JSON payload of that shape; the raw candidate
// text is returned for the caller to parse.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(c.temperature)
	model.ResponseMIMEType = "application/json"
	if schema != nil {
		model.ResponseSchema = schema
	}

	c.logger.Debug("Issuing structured generation request (model=%s, prompt=%d chars)", c.modelName, len(prompt))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(resp)
}

// GenerateText issues a plain-text request with no output-shape constraint.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(c.temperature)

	c.logger.Debug("Issuing text generation request (model=%s, prompt=%d chars)", c.modelName, len(prompt))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(resp)
}

// DescribeImage sends raw image bytes with an instruction and returns the
// model's text response. format is the bare subtype ("png", "jpeg", "webp").
func (c *Client) DescribeImage(ctx context.Context, data []byte, format string, instruction string) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(c.temperature)

	c.logger.Debug("Issuing image description request (model=%s, %d bytes, format=%s)", c.modelName, len(data), format)

	resp, err := model.GenerateContent(ctx, genai.ImageData(format, data), genai.Text(instruction))
	if err != nil {
		return "", fmt.Errorf("describe image: %w", err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("model returned empty text")
	}

	return out, nil
}
