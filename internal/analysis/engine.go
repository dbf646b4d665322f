// Package analysis reconciles generative career advice with deterministic
// fallback content into a complete, bounded CareerAnalysis.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-navigator/internal/fallback"
	"github.com/jonathan/career-navigator/internal/llm"
	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/profile"
	"github.com/jonathan/career-navigator/internal/salary"
	"github.com/jonathan/career-navigator/internal/scoring"
	"github.com/jonathan/career-navigator/internal/tracks"
	"github.com/jonathan/career-navigator/internal/types"
	"github.com/jonathan/career-navigator/internal/usage"
)

// OperationCareerAnalysis names analysis calls in usage records
const OperationCareerAnalysis = "career_analysis"

const (
	// DefaultTimeout bounds an adapter call when the caller sets no deadline
	DefaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 4096
	defaultTemperature = 0.4
	usageTimeout       = 5 * time.Second
	marketDemand       = "high"
)

// ErrAdapter wraps transport and API failures of the generative adapter.
// These are the only errors Analyze returns.
var ErrAdapter = errors.New("generative adapter failed")

// Options are the per-request analysis parameters
type Options struct {
	// Locale is "en" or "ar"; anything else is treated as "en"
	Locale         string
	TargetIndustry string
	// UserID is attached to usage records
	UserID string
}

// Engine produces career analyses. It holds no per-request state; one Engine
// may serve concurrent Analyze calls.
type Engine struct {
	client      llm.Client
	recorder    usage.Recorder
	table       *salary.Table
	pricing     *llm.Config
	now         func() time.Time
	timeout     time.Duration
	tier        llm.ModelTier
	maxTokens   int
	temperature float64
	logger      *zap.Logger
	metrics     *observability.Metrics

	pending sync.WaitGroup
}

// Option configures an Engine
type Option func(*Engine)

// WithClient sets the generative adapter. Without one every analysis is
// built from fallback content.
func WithClient(c llm.Client) Option {
	return func(e *Engine) { e.client = c }
}

// WithRecorder sets the sink for usage records
func WithRecorder(r usage.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithSalaryTable replaces the embedded salary table
func WithSalaryTable(t *salary.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.table = t
		}
	}
}

// WithPricing sets the model pricing used for usage costs
func WithPricing(cfg *llm.Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.pricing = cfg
		}
	}
}

// WithClock sets the time source used for experience calculations
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithTimeout sets the adapter timeout applied when the caller's context has
// no deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithModelTier selects the model tier for adapter calls
func WithModelTier(tier llm.ModelTier) Option {
	return func(e *Engine) { e.tier = tier }
}

// WithGeneration sets the completion limits sent to the adapter
func WithGeneration(maxTokens int, temperature float64) Option {
	return func(e *Engine) {
		if maxTokens > 0 {
			e.maxTokens = maxTokens
		}
		e.temperature = temperature
	}
}

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics sets the metrics the engine reports to
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an engine with the given options
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		table:       salary.Default(),
		pricing:     llm.DefaultConfig(),
		now:         time.Now,
		timeout:     DefaultTimeout,
		tier:        llm.TierStandard,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnalyzeCareer runs a single analysis with client as the generative
// adapter. A nil client produces an all-fallback analysis.
func AnalyzeCareer(ctx context.Context, client llm.Client, p *types.CareerProfile, opts Options) (*types.CareerAnalysis, error) {
	return NewEngine(WithClient(client)).Analyze(ctx, p, opts)
}

// Analyze builds the career analysis for p. Generative content is merged
// field by field with fallback content, so the result is always complete.
// Cancelled calls and unparseable adapter output degrade to fallback. Only
// adapter transport errors are returned, wrapped in ErrAdapter.
func (e *Engine) Analyze(ctx context.Context, p *types.CareerProfile, opts Options) (*types.CareerAnalysis, error) {
	start := time.Now()
	if p == nil {
		p = &types.CareerProfile{}
	}

	locale := types.ParseLocale(opts.Locale)
	gen := fallback.New(locale, e.table)

	years := profile.YearsExperience(p.Experience, e.now())
	level := profile.LevelForYears(years)
	currentRole := profile.CurrentRole(p, gen.GenericRole())
	focusRole := firstNonEmpty(p.TargetRole, currentRole, gen.GenericRole())
	track := tracks.Infer(focusRole)

	fbPaths := gen.Paths(focusRole, track)
	fbGaps := gen.SkillGaps(p.Skills, track)

	doc, err := e.generate(ctx, p, opts.UserID, promptInput{
		locale:   locale,
		role:     focusRole,
		track:    track,
		years:    years,
		level:    level,
		industry: opts.TargetIndustry,
	})
	if err != nil {
		e.metrics.ObserveAnalysis("error", time.Since(start))
		return nil, err
	}

	r := &reconciler{gen: gen, table: e.table, focusRole: focusRole}
	paths := r.careerPaths(doc["careerPaths"], fbPaths)
	gaps := r.skillGaps(doc["skillGaps"], fbGaps)
	strengths := r.strengths(doc["strengths"], gen.Strengths(p.Skills))
	actions := r.weeklyActions(doc["weeklyActions"], gen.WeeklyActions(focusRole, gaps[0].Skill))
	insights := r.insights(doc["industryInsights"], gen.Insights(focusRole, opts.TargetIndustry, track))

	result := &types.CareerAnalysis{
		CurrentPosition: types.CurrentPosition{
			Title:           currentRole,
			Level:           level,
			YearsExperience: years,
			SalaryRange:     e.table.Lookup(currentRole, level),
			MarketDemand:    marketDemand,
		},
		CareerPaths:      paths,
		SkillGaps:        gaps,
		Strengths:        strengths,
		WeeklyActions:    actions,
		CareerScore:      scoring.Score(p, gaps, years),
		IndustryInsights: insights,
	}

	for _, field := range r.fellBack {
		e.metrics.FallbackUsed(field)
	}
	e.metrics.ObserveAnalysis("ok", time.Since(start))
	e.logger.Debug("career analysis complete",
		zap.String("role", focusRole),
		zap.String("track", string(track)),
		zap.String("level", string(level)),
		zap.String("locale", string(locale)),
		zap.Int("paths", len(paths)),
		zap.Int("skill_gaps", len(gaps)),
		zap.Int("score", result.CareerScore),
		zap.Strings("fallback_fields", r.fellBack),
	)

	return result, nil
}

// generate calls the adapter and returns its parsed document. Every outcome
// except a transport error yields a document, possibly empty.
func (e *Engine) generate(ctx context.Context, p *types.CareerProfile, userID string, in promptInput) (map[string]any, error) {
	if e.client == nil {
		e.metrics.AdapterResult(observability.AdapterSkipped)
		return map[string]any{}, nil
	}

	system, user, err := buildPrompts(p, in)
	if err != nil {
		e.logger.Error("failed to build analysis prompt", zap.Error(err))
		e.metrics.AdapterResult(observability.AdapterSkipped)
		return map[string]any{}, nil
	}

	callCtx := ctx
	if _, ok := ctx.Deadline(); !ok && e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.Complete(callCtx, system, user, llm.CompletionOptions{
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
		JSONMode:    true,
		Tier:        e.tier,
	})
	if err != nil {
		if callCtx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			e.logger.Warn("generative call cancelled, using fallback content", zap.Error(err))
			e.metrics.AdapterResult(observability.AdapterCancelled)
			return map[string]any{}, nil
		}
		e.metrics.AdapterResult(observability.AdapterError)
		return nil, fmt.Errorf("%w: %w", ErrAdapter, err)
	}
	if resp == nil {
		e.metrics.AdapterResult(observability.AdapterUnparseable)
		return map[string]any{}, nil
	}

	e.emitUsage(ctx, userID, resp)

	doc := llm.ParseDocument(resp.Content)
	if len(doc) == 0 {
		e.logger.Warn("generative output unparseable, using fallback content",
			zap.String("model", resp.Model),
			zap.Int("content_length", len(resp.Content)),
		)
		e.metrics.AdapterResult(observability.AdapterUnparseable)
		return doc, nil
	}

	e.metrics.AdapterResult(observability.AdapterOK)
	return doc, nil
}

// emitUsage hands a usage record to the recorder without waiting for it.
// Recorder errors and panics are logged and never reach the analysis.
func (e *Engine) emitUsage(ctx context.Context, userID string, resp *llm.Completion) {
	if resp.Usage == nil || resp.Cached {
		return
	}
	e.metrics.TokensUsed(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	if e.recorder == nil {
		return
	}

	rec := usage.NewRecord(
		userID,
		string(resp.Provider),
		resp.Model,
		OperationCareerAnalysis,
		resp.Usage.PromptTokens,
		resp.Usage.CompletionTokens,
		resp.Usage.TotalTokens,
		e.pricing.CostUSD(resp.Model, resp.Usage),
		e.now(),
	)

	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("usage recorder panicked", zap.Any("panic", r))
			}
		}()

		recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), usageTimeout)
		defer cancel()
		if err := e.recorder.RecordUsage(recCtx, rec); err != nil {
			e.logger.Warn("failed to record usage", zap.String("usage_id", rec.ID.String()), zap.Error(err))
		}
	}()
}

// Wait blocks until every usage record handed off so far has been delivered
func (e *Engine) Wait() {
	e.pending.Wait()
}
