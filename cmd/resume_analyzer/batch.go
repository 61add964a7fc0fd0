package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] FILE...",
	Short: "Score many resumes against one job description",
	Long:  "Analyzes each resume file concurrently and prints one JSON line per file, in argument order.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatchCmd,
}

var (
	batchJob         string
	batchJobText     string
	batchCatalog     string
	batchConfig      string
	batchConcurrency int
	batchVerbose     bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchJob, "job", "j", "", "Path to job description file")
	batchCmd.Flags().StringVar(&batchJobText, "job-text", "", "Job description text")
	batchCmd.Flags().StringVar(&batchCatalog, "catalog", "", "Path to a custom skill catalog JSON file")
	batchCmd.Flags().StringVar(&batchConfig, "config", "", "Path to config.json file")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "Maximum resumes analyzed at once")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print debug information to stderr")

	batchCmd.MarkFlagsMutuallyExclusive("job", "job-text")

	rootCmd.AddCommand(batchCmd)
}

// batchItem is one line of batch output. Exactly one of Result and Error is set.
type batchItem struct {
	ID     string                `json:"id"`
	File   string                `json:"file"`
	Source *ingestion.Metadata   `json:"source,omitempty"`
	Result *types.AnalysisResult `json:"result,omitempty"`
	Error  *types.ErrorBody      `json:"error,omitempty"`
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	if batchConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", batchConcurrency)
	}
	logger := newCLILogger(cmd.ErrOrStderr(), batchVerbose)

	cfg, err := loadCLIConfig(batchConfig)
	if err != nil {
		return err
	}
	catalogPath := cfg.CatalogPath
	if batchCatalog != "" {
		catalogPath = batchCatalog
	}

	a, err := newAnalyzer(catalogPath)
	if err != nil {
		return err
	}

	jobText, err := readJobText(batchJob, batchJobText, cfg.MaxUploadBytes)
	if err != nil {
		return err
	}

	items, err := runBatch(cmd.Context(), a, batchOptions{
		Files:       args,
		JobText:     jobText,
		Concurrency: batchConcurrency,
		MaxBytes:    cfg.MaxUploadBytes,
	}, logger)
	if err != nil {
		return err
	}

	if err := writeBatch(cmd.OutOrStdout(), items); err != nil {
		return err
	}

	failed := 0
	for _, item := range items {
		if item.Error != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d resumes failed", failed, len(items))
	}
	return nil
}

type batchOptions struct {
	Files       []string
	JobText     string
	Concurrency int
	MaxBytes    int64
}

// runBatch analyzes every file with at most opts.Concurrency in flight. Per-file failures are
// recorded on their item; only cancellation of ctx aborts the batch.
func runBatch(ctx context.Context, a *analyzer.Analyzer, opts batchOptions, logger *slog.Logger) ([]batchItem, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	items := make([]batchItem, len(opts.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Concurrency))

	for i, path := range opts.Files {
		i, path := i, path
		items[i] = batchItem{ID: uuid.New().String(), File: path}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item := &items[i]

			text, meta, err := ingestion.ReadFile(path, opts.MaxBytes)
			if err != nil {
				item.Error = &types.ErrorBody{Kind: errorKind(err), Message: err.Error()}
				logger.Warn("resume skipped", slog.String("file", path), slog.Any("error", err))
				return nil
			}
			item.Source = meta

			result, err := a.Analyze(text, opts.JobText)
			if err != nil {
				item.Error = &types.ErrorBody{Kind: errorKind(err), Message: err.Error()}
				logger.Warn("resume analysis failed", slog.String("file", path), slog.Any("error", err))
				return nil
			}
			item.Result = result
			logger.Debug("resume analyzed",
				slog.String("id", item.ID),
				slog.String("file", filepath.Base(path)),
				slog.Int("overall_score", result.OverallScore),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}
	return items, nil
}

// writeBatch prints items as JSON lines
func writeBatch(w io.Writer, items []batchItem) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("failed to encode batch item %s: %w", item.File, err)
		}
	}
	return nil
}
