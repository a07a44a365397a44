package summarizer

import (
	"time"

	"github.com/yanqian/dialogsum/pkg/metrics"
)

// Failure codes carried by the AppError inside a failed Result or returned by
// Validate. Transports map them onto user facing messages.
const (
	CodeModelUnavailable   = "model_unavailable"
	CodeEmptyText          = "empty_text"
	CodeTextTooShort       = "text_too_short"
	CodeTextTooLong        = "text_too_long"
	CodeInvalidLengthRange = "invalid_length_range"
	CodeProviderFailure    = "provider_failure"
	CodeMalformedResult    = "malformed_result"
)

// Fixed generation settings sent to the model provider with every request.
const (
	LengthPenalty     = 2.0
	NumBeams          = 4
	EarlyStopping     = true
	NoRepeatNgramSize = 3
)

// Config configures the summarization pipeline.
type Config struct {
	DefaultMaxLength int
	DefaultMinLength int
	MinInputChars    int
	MaxInputChars    int
	EchoChars        int
	Workers          int
	ContextTokens    int
	CacheTTL         time.Duration
}

// DefaultConfig mirrors the limits the web UI has always advertised.
func DefaultConfig() Config {
	return Config{
		DefaultMaxLength: 150,
		DefaultMinLength: 40,
		MinInputChars:    10,
		MaxInputChars:    10000,
		EchoChars:        1000,
		Workers:          2,
		ContextTokens:    1024,
		CacheTTL:         time.Hour,
	}
}

// Params are the caller controlled generation lengths.
type Params struct {
	MaxLength int `json:"max_length"`
	MinLength int `json:"min_length"`
}

// Request represents one summarization call coming from a transport.
type Request struct {
	Text   string
	Params Params
}

// GenerationRequest is what the model provider receives.
type GenerationRequest struct {
	ModelID           string
	Text              string
	MaxLength         int
	MinLength         int
	LengthPenalty     float64
	NumBeams          int
	EarlyStopping     bool
	NoRepeatNgramSize int
}

// Result is the outcome of a generation attempt. Err is an *errors.AppError
// whose code is one of the Code* constants when Success is false.
type Result struct {
	Summary string
	Success bool
	Cached  bool
	Err     error
}

// Statistics describes how much the summary compressed the input.
type Statistics struct {
	InputWords       int     `json:"input_words"`
	SummaryWords     int     `json:"summary_words"`
	CompressionRatio float64 `json:"compression_ratio"`
	InputChars       int     `json:"input_chars"`
	SummaryChars     int     `json:"summary_chars"`
}

// Outcome bundles everything a transport needs to render one request.
type Outcome struct {
	Input      string
	Params     Params
	Result     Result
	Statistics Statistics
	Usage      metrics.TokenUsage
	Duration   time.Duration
}

// SampleDialogue is one of the canned inputs offered by the UI.
type SampleDialogue struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Availability is decided once at startup and shared read-only by every
// request.
type Availability struct {
	ModelLoaded  bool
	GPUAvailable bool
	ModelID      string
	ModelInfo    string
	FineTuned    bool
	LoadedAt     time.Time
}

// Backend pairs the loaded model provider with its availability. Provider is
// nil when ModelLoaded is false.
type Backend struct {
	Provider     ModelProvider
	Availability Availability
}
