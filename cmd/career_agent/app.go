package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jonathan/career-navigator/internal/analysis"
	"github.com/jonathan/career-navigator/internal/config"
	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/llm"
	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/salary"
	"github.com/jonathan/career-navigator/internal/usage"
)

// loadSettings reads the optional config file, fills defaults from the
// environment and applies the persistent flag overrides.
func loadSettings(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	if localeFlag != "" {
		cfg.Locale = localeFlag
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// loadSalaryTable reads the configured salary table, or returns the
// built-in one when path is empty.
func loadSalaryTable(path string) (*salary.Table, error) {
	if path == "" {
		return salary.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read salary table: %w", err)
	}
	return salary.Load(data)
}

// modelConfig applies the configured model override to the default model
// configuration. An overriding model has no known pricing.
func modelConfig(cfg config.Config) *llm.Config {
	models := llm.DefaultConfig()
	if cfg.Model != "" {
		models = models.WithModel(llm.ModelTier(cfg.ModelTier), cfg.Model)
	}
	return models
}

// app owns the engine and everything it depends on
type app struct {
	engine   *analysis.Engine
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
	closers  []func()
}

// newApp wires the engine from cfg. The generative adapter, response
// cache and usage database are each optional; a missing or unreachable one
// is logged and skipped.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	table, err := loadSalaryTable(cfg.SalaryTable)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	models := modelConfig(cfg)

	registry := prometheus.NewRegistry()
	rt := &app{
		logger:   logger,
		registry: registry,
		metrics:  observability.NewMetrics(registry),
	}
	recorders := usage.MultiRecorder{usage.NewLogRecorder(logger)}

	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithMetrics(rt.metrics),
		analysis.WithTimeout(cfg.Timeout()),
		analysis.WithModelTier(llm.ModelTier(cfg.ModelTier)),
		analysis.WithGeneration(cfg.MaxTokens, cfg.Temperature),
		analysis.WithSalaryTable(table),
		analysis.WithPricing(models),
	}

	if cfg.APIKey != "" {
		client, err := rt.newClient(ctx, cfg, models)
		if err != nil {
			rt.Close()
			return nil, err
		}
		opts = append(opts, analysis.WithClient(client))
	} else {
		logger.Info("no API key configured, analyses use fallback content only")
	}

	if cfg.DatabaseURL != "" {
		if database := rt.connectDatabase(ctx, cfg.DatabaseURL); database != nil {
			recorders = append(recorders, database)
		}
	}

	rt.engine = analysis.NewEngine(append(opts, analysis.WithRecorder(recorders))...)
	return rt, nil
}

func (rt *app) newClient(ctx context.Context, cfg config.Config, models *llm.Config) (llm.Client, error) {
	client, err := llm.NewClient(ctx, models, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	rt.closers = append(rt.closers, func() { _ = client.Close() })

	if cfg.RedisURL == "" {
		return client, nil
	}
	rdb, err := llm.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		rt.logger.Warn("response cache disabled", zap.Error(err))
		return client, nil
	}
	rt.closers = append(rt.closers, func() { _ = rdb.Close() })
	return llm.NewCachedClient(client, rdb, cfg.CacheTTL(), rt.logger), nil
}

func (rt *app) connectDatabase(ctx context.Context, url string) *db.DB {
	database, err := db.Connect(ctx, url)
	if err != nil {
		rt.logger.Warn("usage records will not be persisted", zap.Error(err))
		return nil
	}
	if err := database.EnsureSchema(ctx); err != nil {
		rt.logger.Warn("usage records will not be persisted", zap.Error(err))
		database.Close()
		return nil
	}
	rt.closers = append(rt.closers, database.Close)
	return database
}

// Close flushes pending usage records, then releases resources in reverse
// order of acquisition.
func (rt *app) Close() {
	if rt.engine != nil {
		rt.engine.Wait()
	}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	_ = rt.logger.Sync()
}
