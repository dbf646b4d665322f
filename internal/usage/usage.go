// Package usage models the billing record emitted after every generative
// call and the sinks that receive it.
package usage

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SARPerUSD is the fixed conversion rate used for SAR costs
const SARPerUSD = 3.75

// creditsPerUSD converts cost to billing credits
const creditsPerUSD = 100

// Record is one generative call's token usage and cost
type Record struct {
	ID               uuid.UUID `json:"id"`
	UserID           string    `json:"user_id,omitempty"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	Operation        string    `json:"operation"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	CostUSD          float64   `json:"cost_usd"`
	CostSAR          float64   `json:"cost_sar"`
	Credits          int       `json:"credits"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewRecord fills in the derived cost fields and a fresh ID
func NewRecord(userID, provider, model, operation string, promptTokens, completionTokens, totalTokens int, costUSD float64, at time.Time) Record {
	if totalTokens == 0 {
		totalTokens = promptTokens + completionTokens
	}
	if math.IsNaN(costUSD) || costUSD < 0 {
		costUSD = 0
	}
	return Record{
		ID:               uuid.New(),
		UserID:           userID,
		Provider:         provider,
		Model:            model,
		Operation:        operation,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
		CostUSD:          costUSD,
		CostSAR:          costUSD * SARPerUSD,
		Credits:          Credits(costUSD),
		CreatedAt:        at.UTC(),
	}
}

// Credits converts a USD cost into billing credits. Every call costs at least
// one credit.
func Credits(costUSD float64) int {
	credits := int(math.Ceil(costUSD * creditsPerUSD))
	if credits < 1 {
		return 1
	}
	return credits
}

// Recorder receives usage records
type Recorder interface {
	RecordUsage(ctx context.Context, rec Record) error
}

// RecorderFunc adapts a function to Recorder
type RecorderFunc func(ctx context.Context, rec Record) error

// RecordUsage calls f
func (f RecorderFunc) RecordUsage(ctx context.Context, rec Record) error {
	return f(ctx, rec)
}

// LogRecorder writes usage records to a structured log
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder returns a recorder that logs at Info level
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogRecorder{logger: logger}
}

// RecordUsage logs rec
func (r *LogRecorder) RecordUsage(_ context.Context, rec Record) error {
	r.logger.Info("llm usage",
		zap.String("usage_id", rec.ID.String()),
		zap.String("user_id", rec.UserID),
		zap.String("provider", rec.Provider),
		zap.String("model", rec.Model),
		zap.String("operation", rec.Operation),
		zap.Int("prompt_tokens", rec.PromptTokens),
		zap.Int("completion_tokens", rec.CompletionTokens),
		zap.Int("total_tokens", rec.TotalTokens),
		zap.Float64("cost_usd", rec.CostUSD),
		zap.Float64("cost_sar", rec.CostSAR),
		zap.Int("credits", rec.Credits),
	)
	return nil
}

// MultiRecorder fans a record out to every recorder and joins their errors
type MultiRecorder []Recorder

// RecordUsage sends rec to each non-nil recorder
func (m MultiRecorder) RecordUsage(ctx context.Context, rec Record) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.RecordUsage(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
