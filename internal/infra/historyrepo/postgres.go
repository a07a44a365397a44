package historyrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/dialogsum/internal/domain/history"
)

// PostgresRepository implements history.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts one entry.
func (r *PostgresRepository) Save(ctx context.Context, entry history.Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO summary_history (
			id, created_at, model_id, max_length, min_length,
			input_words, input_chars, summary_words, compression_ratio,
			summary, duration_ms, prompt_tokens, cached
		) VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		entry.ID.String(), entry.CreatedAt, entry.ModelID, entry.MaxLength, entry.MinLength,
		entry.InputWords, entry.InputChars, entry.SummaryWords, entry.CompressionRatio,
		entry.Summary, entry.DurationMs, entry.PromptTokens, entry.Cached,
	)
	if err != nil {
		return fmt.Errorf("insert summary history: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, created_at, model_id, max_length, min_length,
		       input_words, input_chars, summary_words, compression_ratio,
		       summary, duration_ms, prompt_tokens, cached
		FROM summary_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query summary history: %w", err)
	}
	defer rows.Close()

	var out []history.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func scanEntry(rows pgx.Rows) (history.Entry, error) {
	var (
		entry history.Entry
		id    string
	)
	if err := rows.Scan(
		&id, &entry.CreatedAt, &entry.ModelID, &entry.MaxLength, &entry.MinLength,
		&entry.InputWords, &entry.InputChars, &entry.SummaryWords, &entry.CompressionRatio,
		&entry.Summary, &entry.DurationMs, &entry.PromptTokens, &entry.Cached,
	); err != nil {
		return history.Entry{}, fmt.Errorf("scan summary history: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return history.Entry{}, fmt.Errorf("parse history id: %w", err)
	}
	entry.ID = parsed
	return entry, nil
}

var _ history.Repository = (*PostgresRepository)(nil)
