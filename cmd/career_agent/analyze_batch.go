package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-navigator/internal/analysis"
	"github.com/jonathan/career-navigator/internal/observability"
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch",
	Short: "Analyze every profile in a directory",
	Long:  "Analyze every *.json CareerProfile in a directory in parallel, writing one <name>.analysis.json per profile.",
	RunE:  runAnalyzeBatch,
}

var (
	batchInputDir    string
	batchOutputDir   string
	batchIndustry    string
	batchConcurrency int
)

const analysisSuffix = ".analysis.json"

func init() {
	analyzeBatchCmd.Flags().StringVar(&batchInputDir, "dir", "", "Directory of CareerProfile JSON files (required)")
	analyzeBatchCmd.Flags().StringVar(&batchOutputDir, "out-dir", "", "Directory for analysis JSON files (required)")
	analyzeBatchCmd.Flags().StringVar(&batchIndustry, "industry", "", "Target industry (overrides config)")
	analyzeBatchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Parallel analyses (overrides config)")

	_ = analyzeBatchCmd.MarkFlagRequired("dir")
	_ = analyzeBatchCmd.MarkFlagRequired("out-dir")

	rootCmd.AddCommand(analyzeBatchCmd)
}

func runAnalyzeBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	if batchConcurrency > 0 {
		cfg.Concurrency = batchConcurrency
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	opts := analysis.Options{
		Locale:         cfg.Locale,
		TargetIndustry: firstSet(batchIndustry, cfg.TargetIndustry),
		UserID:         cfg.UserID,
	}
	result, err := analyzeDir(ctx, svc.engine, batchInputDir, batchOutputDir, cfg.Concurrency, opts, svc.logger)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	printer.PrintBatchSummary(result.succeeded, result.failures)
	if counts, err := observability.FallbackCounts(svc.registry); err != nil {
		svc.logger.Warn("failed to read fallback counts", zap.Error(err))
	} else {
		printer.PrintFallbackFields(counts)
	}
	if len(result.failures) > 0 {
		return fmt.Errorf("%d of %d analyses failed", len(result.failures), result.succeeded+len(result.failures))
	}
	return nil
}

type batchResult struct {
	succeeded int
	failures  map[string]string
}

// analyzeDir analyzes every profile in inDir with at most concurrency
// analyses in flight. A failed profile is recorded and does not stop the rest.
func analyzeDir(ctx context.Context, engine *analysis.Engine, inDir, outDir string, concurrency int, opts analysis.Options, logger *zap.Logger) (*batchResult, error) {
	files, err := profileFiles(inDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		mu     sync.Mutex
		result = &batchResult{failures: make(map[string]string)}
	)

	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, file := range files {
		file := file
		g.Go(func() error {
			name := filepath.Base(file)
			err := analyzeOne(ctx, engine, file, filepath.Join(outDir, strings.TrimSuffix(name, ".json")+analysisSuffix), opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("profile analysis failed", zap.String("file", name), zap.Error(err))
				result.failures[name] = err.Error()
				return nil
			}
			result.succeeded++
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

func analyzeOne(ctx context.Context, engine *analysis.Engine, inPath, outPath string, opts analysis.Options) error {
	p, err := readProfile(inPath)
	if err != nil {
		return err
	}
	result, err := engine.Analyze(ctx, p, opts)
	if err != nil {
		return fmt.Errorf("failed to analyze profile: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeAnalysis(f, result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// profileFiles lists the profile JSON files in dir, skipping earlier outputs
func profileFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasSuffix(name, analysisSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
