// Package db provides PostgreSQL storage for generative usage records.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/career-navigator/internal/usage"
)

// Schema creates the usage table when it does not exist
const Schema = `
CREATE TABLE IF NOT EXISTS usage_records (
	id                UUID PRIMARY KEY,
	user_id           TEXT NOT NULL DEFAULT '',
	provider          TEXT NOT NULL,
	model             TEXT NOT NULL,
	operation         TEXT NOT NULL,
	prompt_tokens     INTEGER NOT NULL,
	completion_tokens INTEGER NOT NULL,
	total_tokens      INTEGER NOT NULL,
	cost_usd          DOUBLE PRECISION NOT NULL,
	cost_sar          DOUBLE PRECISION NOT NULL,
	credits           INTEGER NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS usage_records_user_created_idx ON usage_records (user_id, created_at DESC);
`

const defaultListLimit = 50

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables this package writes to
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordUsage stores one usage record. It implements usage.Recorder.
func (db *DB) RecordUsage(ctx context.Context, rec usage.Record) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO usage_records
		 (id, user_id, provider, model, operation, prompt_tokens, completion_tokens,
		  total_tokens, cost_usd, cost_sar, credits, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.UserID, rec.Provider, rec.Model, rec.Operation, rec.PromptTokens, rec.CompletionTokens,
		rec.TotalTokens, rec.CostUSD, rec.CostSAR, rec.Credits, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record usage %s: %w", rec.ID, err)
	}
	return nil
}

// UsageSummary totals a user's usage since the given time
func (db *DB) UsageSummary(ctx context.Context, userID string, since time.Time) (*UsageSummary, error) {
	summary := UsageSummary{UserID: userID, Since: since}
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(prompt_tokens), 0),
		        COALESCE(SUM(completion_tokens), 0),
		        COALESCE(SUM(total_tokens), 0),
		        COALESCE(SUM(cost_usd), 0),
		        COALESCE(SUM(cost_sar), 0),
		        COALESCE(SUM(credits), 0)
		 FROM usage_records WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&summary.Calls, &summary.PromptTokens, &summary.CompletionTokens, &summary.TotalTokens,
		&summary.CostUSD, &summary.CostSAR, &summary.Credits)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}
	return &summary, nil
}

// ListUsage retrieves usage records with optional filters, newest first
func (db *DB) ListUsage(ctx context.Context, filters UsageFilters) ([]usage.Record, error) {
	query, args := buildListUsageQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	defer rows.Close()

	var records []usage.Record
	for rows.Next() {
		var rec usage.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Provider, &rec.Model, &rec.Operation,
			&rec.PromptTokens, &rec.CompletionTokens, &rec.TotalTokens,
			&rec.CostUSD, &rec.CostSAR, &rec.Credits, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	return records, nil
}

func buildListUsageQuery(filters UsageFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}

	query := `SELECT id, user_id, provider, model, operation, prompt_tokens, completion_tokens,
		total_tokens, cost_usd, cost_sar, credits, created_at
		FROM usage_records WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, filters.UserID)
		argNum++
	}
	if filters.Operation != "" {
		query += fmt.Sprintf(" AND operation = $%d", argNum)
		args = append(args, filters.Operation)
		argNum++
	}
	if !filters.Since.IsZero() {
		query += fmt.Sprintf(" AND created_at >= $%d", argNum)
		args = append(args, filters.Since)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)
	return query, args
}
