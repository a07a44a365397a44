package hfinference

import (
	"context"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
)

// Generate adapts the client to summarizer.ModelProvider.
func (c *Client) Generate(ctx context.Context, req summarizer.GenerationRequest) ([]any, error) {
	return c.Summarize(ctx, req.ModelID, SummarizationRequest{
		Inputs: req.Text,
		Parameters: Parameters{
			MaxLength:         req.MaxLength,
			MinLength:         req.MinLength,
			LengthPenalty:     req.LengthPenalty,
			NumBeams:          req.NumBeams,
			EarlyStopping:     req.EarlyStopping,
			NoRepeatNgramSize: req.NoRepeatNgramSize,
		},
		Options: Options{WaitForModel: true},
	})
}

var _ summarizer.ModelProvider = (*Client)(nil)
