package db

import (
	"time"
)

// UsageSummary aggregates a user's usage records
type UsageSummary struct {
	UserID           string    `json:"user_id"`
	Since            time.Time `json:"since"`
	Calls            int64     `json:"calls"`
	PromptTokens     int64     `json:"prompt_tokens"`
	CompletionTokens int64     `json:"completion_tokens"`
	TotalTokens      int64     `json:"total_tokens"`
	CostUSD          float64   `json:"cost_usd"`
	CostSAR          float64   `json:"cost_sar"`
	Credits          int64     `json:"credits"`
}

// UsageFilters holds optional filters for listing usage records
type UsageFilters struct {
	UserID    string
	Operation string
	Since     time.Time
	Limit     int
}
