package summarizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/semaphore"

	apperrors "github.com/yanqian/dialogsum/pkg/errors"
	"github.com/yanqian/dialogsum/pkg/metrics"
)

// Service exposes the summarization pipeline to transports.
type Service interface {
	Availability() Availability
	Samples() []SampleDialogue
	DefaultParams() Params
	Echo(text string, err error) string
	Generate(ctx context.Context, text string, params Params) Result
	Summarize(ctx context.Context, req Request) Outcome
}

// ModelProvider is the external summarization capability. The returned slice
// mirrors the loosely shaped pipeline output, normally
// [{"summary_text": "..."}].
type ModelProvider interface {
	Generate(ctx context.Context, req GenerationRequest) ([]any, error)
}

// Cache stores finished summaries keyed by input and parameters.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, summary string, ttl time.Duration) error
}

// Recorder receives every successful outcome.
type Recorder interface {
	Record(ctx context.Context, outcome Outcome, modelID string) error
}

// TokenCounter estimates how many model tokens a text occupies.
type TokenCounter interface {
	Count(text string) (int, error)
}

type service struct {
	cfg          Config
	availability Availability
	provider     ModelProvider
	validator    Validator
	pool         *semaphore.Weighted
	cache        Cache
	recorder     Recorder
	counter      TokenCounter
	logger       *slog.Logger
}

// NewService is a wire provider for the summarizer domain. cache, recorder
// and counter are optional.
func NewService(cfg Config, backend Backend, cache Cache, recorder Recorder, counter TokenCounter, logger *slog.Logger) Service {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	availability := backend.Availability
	if backend.Provider == nil {
		availability.ModelLoaded = false
	}
	return &service{
		cfg:          cfg,
		availability: availability,
		provider:     backend.Provider,
		validator:    NewValidator(cfg),
		pool:         semaphore.NewWeighted(int64(workers)),
		cache:        cache,
		recorder:     recorder,
		counter:      counter,
		logger:       logger.With("component", "summarizer.service"),
	}
}

func (s *service) Availability() Availability {
	return s.availability
}

func (s *service) Samples() []SampleDialogue {
	return SampleDialogues()
}

func (s *service) DefaultParams() Params {
	return Params{MaxLength: s.cfg.DefaultMaxLength, MinLength: s.cfg.DefaultMinLength}
}

func (s *service) Echo(text string, err error) string {
	return s.validator.Echo(text, err)
}

func (s *service) Summarize(ctx context.Context, req Request) Outcome {
	text := strings.TrimSpace(req.Text)
	out := Outcome{Input: text, Params: req.Params}

	if !s.availability.ModelLoaded {
		out.Result = failure(CodeModelUnavailable, MsgModelUnavailable, nil)
		return out
	}
	if err := s.validator.Validate(text, req.Params); err != nil {
		out.Result = Result{Err: err}
		return out
	}

	out.Usage = s.estimateTokens(text)
	if out.Usage.ExceedsContext() {
		s.logger.Warn("input exceeds model context and will be truncated", "tokens", out.Usage.PromptTokens, "limit", out.Usage.ContextLimit)
	}

	start := time.Now()
	out.Result = s.Generate(ctx, text, req.Params)
	out.Duration = time.Since(start)
	if !out.Result.Success {
		return out
	}

	out.Statistics = ComputeStatistics(text, out.Result.Summary)
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, out, s.availability.ModelID); err != nil {
			s.logger.Error("record summary failed", "error", err)
		}
	}
	return out
}

func (s *service) Generate(ctx context.Context, text string, params Params) Result {
	if !s.availability.ModelLoaded || s.provider == nil {
		return failure(CodeModelUnavailable, MsgModelUnavailable, nil)
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < s.cfg.MinInputChars {
		return Result{Err: s.validator.tooShort()}
	}

	clean := Normalize(text)
	key := s.cacheKey(clean, params)
	if summary, ok := s.cached(ctx, key); ok {
		return Result{Summary: summary, Success: true, Cached: true}
	}

	if err := s.pool.Acquire(ctx, 1); err != nil {
		return failure(CodeProviderFailure, "generation aborted before start", err)
	}
	defer s.pool.Release(1)

	s.logger.Info("generating summary", "chars", utf8.RuneCountInString(clean), "max_length", params.MaxLength, "min_length", params.MinLength)

	// Generation is not cancellable once started.
	output, err := s.provider.Generate(context.WithoutCancel(ctx), GenerationRequest{
		ModelID:           s.availability.ModelID,
		Text:              clean,
		MaxLength:         params.MaxLength,
		MinLength:         params.MinLength,
		LengthPenalty:     LengthPenalty,
		NumBeams:          NumBeams,
		EarlyStopping:     EarlyStopping,
		NoRepeatNgramSize: NoRepeatNgramSize,
	})
	if err != nil {
		s.logger.Error("summary generation failed", "error", err)
		return failure(CodeProviderFailure, "model provider failed", err)
	}

	summary, ok := extractSummary(output)
	if !ok {
		s.logger.Warn("model provider returned no generations")
		return failure(CodeMalformedResult, MsgMalformedResult, nil)
	}

	s.logger.Info("summary generated", "chars", utf8.RuneCountInString(summary))
	s.store(ctx, key, summary)
	return Result{Summary: summary, Success: true}
}

// LegacyText renders the result as the single string the public API has
// always returned: the summary on success, otherwise an "Error: " tagged message.
func (r Result) LegacyText() string {
	if r.Success {
		return r.Summary
	}
	if apperrors.IsCode(r.Err, CodeMalformedResult) {
		return MsgMalformedResult
	}
	return "Error: " + failureDetail(r.Err)
}

func failureDetail(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return appErr.Err.Error()
		}
		return appErr.Message
	}
	if err == nil {
		return "unknown failure"
	}
	return err.Error()
}

func failure(code, message string, err error) Result {
	return Result{Err: apperrors.Wrap(code, message, err)}
}

func extractSummary(output []any) (string, bool) {
	if len(output) == 0 {
		return "", false
	}
	first := output[0]
	if fields, ok := first.(map[string]any); ok {
		if value, found := fields["summary_text"]; found {
			if summary, isString := value.(string); isString {
				return summary, true
			}
			return fmt.Sprint(value), true
		}
	}
	return fmt.Sprint(first), true
}

func (s *service) estimateTokens(text string) metrics.TokenUsage {
	if s.counter == nil {
		return metrics.TokenUsage{}
	}
	n, err := s.counter.Count(Normalize(text))
	if err != nil {
		s.logger.Debug("token estimate failed", "error", err)
		return metrics.TokenUsage{}
	}
	return metrics.TokenUsage{PromptTokens: n, ContextLimit: s.cfg.ContextTokens}
}

func (s *service) cacheKey(clean string, params Params) string {
	h := sha256.New()
	h.Write([]byte(s.availability.ModelID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(params.MaxLength)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(params.MinLength)))
	h.Write([]byte{0})
	h.Write([]byte(clean))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *service) cached(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	summary, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("summary cache lookup failed", "error", err)
		return "", false
	}
	return summary, ok
}

func (s *service) store(ctx context.Context, key, summary string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(context.WithoutCancel(ctx), key, summary, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("summary cache store failed", "error", err)
	}
}
