package summarizer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
	apperrors "github.com/yanqian/dialogsum/pkg/errors"
)

const dialogue = "#Person1#: Hi, how are you?\n\n#Person2#:   I am fine, thanks."

func TestGenerateUsesFixedGenerationConfig(t *testing.T) {
	provider := &stubProvider{output: []any{map[string]any{"summary_text": "Person2 is fine."}}}
	svc := newService(t, provider, nil, nil)

	res := svc.Generate(context.Background(), dialogue, summarizer.Params{MaxLength: 60, MinLength: 5})
	require.True(t, res.Success)
	require.NoError(t, res.Err)
	require.Equal(t, "Person2 is fine.", res.Summary)

	require.Len(t, provider.calls, 1)
	got := provider.calls[0]
	require.Equal(t, "#Person1#: Hi, how are you? #Person2#: I am fine, thanks.", got.Text)
	require.Equal(t, "test/bart", got.ModelID)
	require.Equal(t, 60, got.MaxLength)
	require.Equal(t, 5, got.MinLength)
	require.Equal(t, 2.0, got.LengthPenalty)
	require.Equal(t, 4, got.NumBeams)
	require.True(t, got.EarlyStopping)
	require.Equal(t, 3, got.NoRepeatNgramSize)
}

func TestGenerateModelUnavailableSkipsProvider(t *testing.T) {
	provider := &stubProvider{}
	backend := summarizer.Backend{Provider: provider, Availability: summarizer.Availability{ModelLoaded: false}}
	svc := summarizer.NewService(summarizer.DefaultConfig(), backend, nil, nil, nil, newTestLogger())

	for _, text := range []string{"", "short", dialogue} {
		res := svc.Generate(context.Background(), text, svc.DefaultParams())
		require.False(t, res.Success)
		require.True(t, apperrors.IsCode(res.Err, summarizer.CodeModelUnavailable))
		require.Equal(t, "Error: Model not loaded. Please check if the model files are available.", res.LegacyText())
	}
	require.Empty(t, provider.calls)
}

func TestNilProviderMeansUnavailable(t *testing.T) {
	backend := summarizer.Backend{Availability: summarizer.Availability{ModelLoaded: true}}
	svc := summarizer.NewService(summarizer.DefaultConfig(), backend, nil, nil, nil, newTestLogger())
	require.False(t, svc.Availability().ModelLoaded)
}

func TestGenerateRejectsShortText(t *testing.T) {
	provider := &stubProvider{}
	svc := newService(t, provider, nil, nil)

	res := svc.Generate(context.Background(), "   tiny   ", svc.DefaultParams())
	require.False(t, res.Success)
	require.Equal(t, "Error: Text too short. Please enter at least 10 characters.", res.LegacyText())
	require.Empty(t, provider.calls)
}

func TestGenerateProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("CUDA out of memory")}
	svc := newService(t, provider, nil, nil)

	res := svc.Generate(context.Background(), dialogue, svc.DefaultParams())
	require.False(t, res.Success)
	require.True(t, apperrors.IsCode(res.Err, summarizer.CodeProviderFailure))
	require.Equal(t, "Error: CUDA out of memory", res.LegacyText())
	require.Len(t, provider.calls, 1)
}

func TestGenerateMalformedOutput(t *testing.T) {
	provider := &stubProvider{output: []any{}}
	svc := newService(t, provider, nil, nil)

	res := svc.Generate(context.Background(), dialogue, svc.DefaultParams())
	require.False(t, res.Success)
	require.True(t, apperrors.IsCode(res.Err, summarizer.CodeMalformedResult))
	require.Equal(t, "Could not generate summary. Please try again.", res.LegacyText())
}

func TestGenerateSummaryStartingWithErrorIsSuccess(t *testing.T) {
	provider := &stubProvider{output: []any{map[string]any{"summary_text": "Error rates were discussed."}}}
	svc := newService(t, provider, nil, nil)

	res := svc.Generate(context.Background(), dialogue, svc.DefaultParams())
	require.True(t, res.Success)
	require.Equal(t, "Error rates were discussed.", res.Summary)
}

func TestGenerateUsesCache(t *testing.T) {
	provider := &stubProvider{output: []any{map[string]any{"summary_text": "Cached summary."}}}
	cache := newStubCache()
	svc := newService(t, provider, cache, nil)

	first := svc.Generate(context.Background(), dialogue, svc.DefaultParams())
	require.True(t, first.Success)
	require.False(t, first.Cached)

	second := svc.Generate(context.Background(), "  "+dialogue+"  ", svc.DefaultParams())
	require.True(t, second.Success)
	require.True(t, second.Cached)
	require.Equal(t, "Cached summary.", second.Summary)
	require.Len(t, provider.calls, 1)
	require.Equal(t, time.Hour, cache.lastTTL)

	other := svc.Generate(context.Background(), dialogue, summarizer.Params{MaxLength: 10, MinLength: 1})
	require.True(t, other.Success)
	require.False(t, other.Cached)
	require.Len(t, provider.calls, 2)
}

func TestSummarizeComputesStatisticsAndRecords(t *testing.T) {
	provider := &stubProvider{output: []any{map[string]any{"summary_text": "I am fine."}}}
	recorder := &stubRecorder{}
	svc := newService(t, provider, nil, recorder)

	out := svc.Summarize(context.Background(), summarizer.Request{Text: "  Hi, I am fine.  ", Params: svc.DefaultParams()})
	require.True(t, out.Result.Success)
	require.Equal(t, "Hi, I am fine.", out.Input)
	require.Equal(t, summarizer.Statistics{InputWords: 4, SummaryWords: 3, CompressionRatio: 1.33, InputChars: 14, SummaryChars: 10}, out.Statistics)

	require.Len(t, recorder.outcomes, 1)
	require.Equal(t, "test/bart", recorder.modelID)
}

func TestSummarizeValidationOrder(t *testing.T) {
	provider := &stubProvider{output: []any{map[string]any{"summary_text": "unused"}}}
	recorder := &stubRecorder{}
	svc := newService(t, provider, nil, recorder)

	tests := []struct {
		text   string
		params summarizer.Params
		code   string
	}{
		{text: "", params: svc.DefaultParams(), code: summarizer.CodeEmptyText},
		{text: "too short", params: svc.DefaultParams(), code: summarizer.CodeTextTooShort},
		{text: strings.Repeat("a", 10001), params: svc.DefaultParams(), code: summarizer.CodeTextTooLong},
		{text: dialogue, params: summarizer.Params{MaxLength: 10, MinLength: 11}, code: summarizer.CodeInvalidLengthRange},
	}
	for _, tt := range tests {
		out := svc.Summarize(context.Background(), summarizer.Request{Text: tt.text, Params: tt.params})
		require.False(t, out.Result.Success)
		require.True(t, apperrors.IsCode(out.Result.Err, tt.code), "want %s got %v", tt.code, out.Result.Err)
	}
	require.Empty(t, provider.calls)
	require.Empty(t, recorder.outcomes)
}

func TestSummarizeModelUnavailableComesFirst(t *testing.T) {
	backend := summarizer.Backend{Availability: summarizer.Availability{ModelLoaded: false}}
	svc := summarizer.NewService(summarizer.DefaultConfig(), backend, nil, nil, nil, newTestLogger())

	out := svc.Summarize(context.Background(), summarizer.Request{Text: "", Params: svc.DefaultParams()})
	require.True(t, apperrors.IsCode(out.Result.Err, summarizer.CodeModelUnavailable))
}

func TestSummarizeFailureIsNotRecorded(t *testing.T) {
	provider := &stubProvider{err: errors.New("down")}
	recorder := &stubRecorder{}
	svc := newService(t, provider, nil, recorder)

	out := svc.Summarize(context.Background(), summarizer.Request{Text: dialogue, Params: svc.DefaultParams()})
	require.False(t, out.Result.Success)
	require.Zero(t, out.Statistics)
	require.Empty(t, recorder.outcomes)
}

func TestSummarizeEstimatesTokens(t *testing.T) {
	provider := &stubProvider{output: []any{map[string]any{"summary_text": "ok ok"}}}
	counter := stubCounter(2000)
	backend := summarizer.Backend{Provider: provider, Availability: summarizer.Availability{ModelLoaded: true, ModelID: "test/bart"}}
	svc := summarizer.NewService(summarizer.DefaultConfig(), backend, nil, nil, counter, newTestLogger())

	out := svc.Summarize(context.Background(), summarizer.Request{Text: dialogue, Params: svc.DefaultParams()})
	require.True(t, out.Result.Success)
	require.Equal(t, 2000, out.Usage.PromptTokens)
	require.True(t, out.Usage.ExceedsContext())
}

func TestGenerateConcurrentRequests(t *testing.T) {
	provider := &stubProvider{output: []any{map[string]any{"summary_text": "Parallel."}}}
	svc := newService(t, provider, nil, nil)

	results := make([]summarizer.Result, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Generate(context.Background(), dialogue, svc.DefaultParams())
		}(i)
	}
	wg.Wait()
	for _, res := range results {
		require.True(t, res.Success)
	}
	require.Len(t, provider.calls, 8)
}

func newService(t *testing.T, provider summarizer.ModelProvider, cache summarizer.Cache, recorder summarizer.Recorder) summarizer.Service {
	t.Helper()
	backend := summarizer.Backend{
		Provider: provider,
		Availability: summarizer.Availability{
			ModelLoaded: true,
			ModelID:     "test/bart",
			ModelInfo:   "Base BART model",
		},
	}
	return summarizer.NewService(summarizer.DefaultConfig(), backend, cache, recorder, nil, newTestLogger())
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubProvider struct {
	mu     sync.Mutex
	output []any
	err    error
	calls  []summarizer.GenerationRequest
}

func (s *stubProvider) Generate(_ context.Context, req summarizer.GenerationRequest) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

type stubCache struct {
	data    map[string]string
	lastTTL time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string]string)}
}

func (s *stubCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubCache) Set(_ context.Context, key, summary string, ttl time.Duration) error {
	s.data[key] = summary
	s.lastTTL = ttl
	return nil
}

type stubRecorder struct {
	outcomes []summarizer.Outcome
	modelID  string
}

func (s *stubRecorder) Record(_ context.Context, outcome summarizer.Outcome, modelID string) error {
	s.outcomes = append(s.outcomes, outcome)
	s.modelID = modelID
	return nil
}

type stubCounter int

func (c stubCounter) Count(string) (int, error) {
	return int(c), nil
}
