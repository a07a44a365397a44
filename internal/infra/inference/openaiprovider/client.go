package openaiprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
)

const instructions = `Summarize the dialogue in plain prose.

Rules:
- Between %d and %d tokens.
- Refer to speakers by the names or labels used in the dialogue.
- Keep key facts (dates, numbers, decisions).
- Do not repeat phrases.
- Output only the summary.`

// Client produces summaries through OpenAI's Responses API.
type Client struct {
	client openai.Client
	model  string
}

// NewClient builds a client. baseURL may point at any compatible endpoint.
func NewClient(apiKey, baseURL, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("openai model is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate implements summarizer.ModelProvider. The output mirrors the
// summarization pipeline shape: a single element with summary_text.
func (c *Client) Generate(ctx context.Context, req summarizer.GenerationRequest) ([]any, error) {
	model := req.ModelID
	if model == "" {
		model = c.model
	}
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           model,
		MaxOutputTokens: openai.Int(int64(req.MaxLength)),
		Instructions:    openai.String(fmt.Sprintf(instructions, req.MinLength, req.MaxLength)),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	if resp.Status == "incomplete" {
		return nil, fmt.Errorf("response is incomplete (reason = %s)", resp.IncompleteDetails.Reason)
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return []any{}, nil
	}
	return []any{map[string]any{"summary_text": summary}}, nil
}

var _ summarizer.ModelProvider = (*Client)(nil)
