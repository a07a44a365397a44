package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Parameters are the generation settings of a summarization pipeline call.
type Parameters struct {
	MaxLength         int     `json:"max_length"`
	MinLength         int     `json:"min_length"`
	LengthPenalty     float64 `json:"length_penalty"`
	NumBeams          int     `json:"num_beams"`
	EarlyStopping     bool    `json:"early_stopping"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size"`
}

// Options control how the inference server schedules the call.
type Options struct {
	WaitForModel bool `json:"wait_for_model"`
}

// SummarizationRequest is the payload sent to the inference endpoint.
type SummarizationRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters Parameters `json:"parameters"`
	Options    Options    `json:"options"`
}

// Client performs HTTP requests against a Hugging Face compatible inference
// endpoint.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an inference client. A zero timeout leaves requests
// unbounded.
func NewClient(token, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse inference endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("inference endpoint must use http or https")
	}
	return &Client{
		token:   strings.TrimSpace(token),
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Summarize runs the summarization pipeline of modelID. The decoded output is
// returned as is when it is a JSON array; any other successful shape yields
// nil so callers can treat it as malformed.
func (c *Client) Summarize(ctx context.Context, modelID string, req SummarizationRequest) ([]any, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode summarization request: %w", err)
	}
	httpReq, err := c.newHTTPRequest(ctx, http.MethodPost, modelID, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode summarization response: %w", err)
	}
	switch v := decoded.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if msg, ok := v["error"]; ok {
			return nil, fmt.Errorf("inference error: %v", msg)
		}
	}
	return nil, nil
}

// Probe checks that modelID is reachable on the endpoint.
func (c *Client) Probe(ctx context.Context, modelID string) error {
	httpReq, err := c.newHTTPRequest(ctx, http.MethodGet, modelID, nil)
	if err != nil {
		return err
	}
	_, err = c.do(httpReq)
	return err
}

func (c *Client) do(httpReq *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request inference endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("inference request failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) newHTTPRequest(ctx context.Context, method, modelID string, body io.Reader) (*http.Request, error) {
	modelID = strings.Trim(strings.TrimSpace(modelID), "/")
	if modelID == "" {
		return nil, errors.New("model id cannot be empty")
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+modelID, body)
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}
