package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one successful summarization kept for the history view.
type Entry struct {
	ID               uuid.UUID `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	ModelID          string    `json:"model_id"`
	MaxLength        int       `json:"max_length"`
	MinLength        int       `json:"min_length"`
	InputWords       int       `json:"input_words"`
	InputChars       int       `json:"input_chars"`
	SummaryWords     int       `json:"summary_words"`
	CompressionRatio float64   `json:"compression_ratio"`
	Summary          string    `json:"summary"`
	DurationMs       int64     `json:"duration_ms"`
	PromptTokens     int       `json:"prompt_tokens,omitempty"`
	Cached           bool      `json:"cached"`
}

// Repository persists history entries.
type Repository interface {
	Save(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
