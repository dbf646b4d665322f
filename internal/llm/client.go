package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// CompletionOptions tune a single completion request
type CompletionOptions struct {
	MaxTokens   int
	Temperature float64
	// JSONMode asks the provider for a JSON document
	JSONMode bool
	Tier     ModelTier
}

// Usage is the token accounting a provider reports for one completion
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the raw result of one completion request. Content is
// untrusted text; Usage is nil when the provider reported none or the result
// came from a cache.
type Completion struct {
	Content  string
	Usage    *Usage
	Provider Provider
	Model    string
	Cached   bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete runs one system+user prompt completion
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (*Completion, error)
	// GetModel returns the provider model used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete sends the prompts to the model for opts.Tier. A response without
// usable text, including one blocked by the provider's safety or recitation
// filters, yields empty content rather than an error; only transport and API
// failures are returned as errors.
func (c *GeminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (*Completion, error) {
	modelName := c.config.GetModel(opts.Tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", opts.Tier)
	}

	model := c.client.GenerativeModel(modelName)
	if systemPrompt != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	}
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	model.SetTemperature(float32(opts.Temperature))
	if opts.JSONMode {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	return toCompletion(resp, err, modelName)
}

// toCompletion converts a GenerateContent result. A blocked response is
// content, not a failure.
func toCompletion(resp *genai.GenerateContentResponse, err error, modelName string) (*Completion, error) {
	var blocked *genai.BlockedError
	if err != nil && !errors.As(err, &blocked) {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return &Completion{
		Content:  extractTextFromResponse(resp),
		Usage:    usageFromResponse(resp),
		Provider: ProviderGemini,
		Model:    modelName,
	}, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse joins the text parts of the first candidate
func extractTextFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.Join(parts, "")
}

func usageFromResponse(resp *genai.GenerateContentResponse) *Usage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	meta := resp.UsageMetadata
	usage := &Usage{
		PromptTokens:     int(meta.PromptTokenCount),
		CompletionTokens: int(meta.CandidatesTokenCount),
		TotalTokens:      int(meta.TotalTokenCount),
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return usage
}
