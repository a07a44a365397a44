package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
	apperrors "github.com/yanqian/dialogsum/pkg/errors"
	"github.com/yanqian/dialogsum/pkg/util"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service records successful summaries and serves the recent ones.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService is a wire provider for the history domain.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With("component", "history.service"), now: util.NowUTC}
}

// Record implements summarizer.Recorder.
func (s *Service) Record(ctx context.Context, outcome summarizer.Outcome, modelID string) error {
	if !outcome.Result.Success {
		return nil
	}
	entry := Entry{
		ID:               uuid.New(),
		CreatedAt:        s.now(),
		ModelID:          modelID,
		MaxLength:        outcome.Params.MaxLength,
		MinLength:        outcome.Params.MinLength,
		InputWords:       outcome.Statistics.InputWords,
		InputChars:       outcome.Statistics.InputChars,
		SummaryWords:     outcome.Statistics.SummaryWords,
		CompressionRatio: outcome.Statistics.CompressionRatio,
		Summary:          outcome.Result.Summary,
		DurationMs:       outcome.Duration.Milliseconds(),
		PromptTokens:     outcome.Usage.PromptTokens,
		Cached:           outcome.Result.Cached,
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		return apperrors.Wrap("history_error", "save history entry", err)
	}
	s.logger.Debug("history entry saved", "id", entry.ID)
	return nil
}

// Recent returns the newest entries first. Non-positive limits use the
// default and large ones are capped.
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("history_error", "load history", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

var _ summarizer.Recorder = (*Service)(nil)
