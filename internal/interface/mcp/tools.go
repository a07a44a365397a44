package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
	apperrors "github.com/yanqian/dialogsum/pkg/errors"
)

// SummarizeArgs are the arguments of the summarize_dialogue tool.
type SummarizeArgs struct {
	Text      string `json:"text" jsonschema:"Dialogue to summarize"`
	MaxLength *int   `json:"max_length,omitempty" jsonschema:"Maximum summary length in tokens (default 150)"`
	MinLength *int   `json:"min_length,omitempty" jsonschema:"Minimum summary length in tokens (default 40)"`
}

// SummarizeResult is the result of the summarize_dialogue tool.
type SummarizeResult struct {
	Summary    string                `json:"summary"`
	Statistics summarizer.Statistics `json:"statistics"`
	Parameters summarizer.Params     `json:"parameters"`
}

// ListSamplesArgs takes no input.
type ListSamplesArgs struct{}

// ListSamplesResult is the result of the list_sample_dialogues tool.
type ListSamplesResult struct {
	Examples []summarizer.SampleDialogue `json:"examples"`
	Count    int                         `json:"count"`
}

func (s *Server) handleSummarize(ctx context.Context,
	req *mcp.CallToolRequest, args SummarizeArgs) (*mcp.CallToolResult, SummarizeResult, error) {

	params := summarizer.ParseParams(optional(args.MaxLength), optional(args.MinLength), s.svc.DefaultParams())
	out := s.svc.Summarize(ctx, summarizer.Request{Text: args.Text, Params: params})
	if !out.Result.Success {
		s.logger.Warn("mcp summarize failed", "code", apperrors.CodeOf(out.Result.Err), "error", out.Result.Err)
		if apperrors.IsCode(out.Result.Err, summarizer.CodeProviderFailure) {
			return nil, SummarizeResult{}, errors.New(out.Result.LegacyText())
		}
		return nil, SummarizeResult{}, errors.New(apperrors.MessageOf(out.Result.Err))
	}

	return nil, SummarizeResult{
		Summary:    out.Result.Summary,
		Statistics: out.Statistics,
		Parameters: out.Params,
	}, nil
}

func (s *Server) handleListSamples(ctx context.Context,
	req *mcp.CallToolRequest, args ListSamplesArgs) (*mcp.CallToolResult, ListSamplesResult, error) {

	samples := s.svc.Samples()
	return nil, ListSamplesResult{Examples: samples, Count: len(samples)}, nil
}

func optional(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
