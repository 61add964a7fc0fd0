package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

// loadCLIConfig loads the config file named by path, or by RESUME_ANALYZER_CONFIG when path is empty.
func loadCLIConfig(path string) (config.Config, error) {
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(path, os.Getenv)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newAnalyzer builds an analyzer over the catalog at path, or the embedded catalog when path is empty.
func newAnalyzer(path string) (*analyzer.Analyzer, error) {
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill catalog: %w", err)
	}
	return analyzer.New(cat)
}

// newCLILogger logs to w as text. Verbose mode enables debug output, otherwise only warnings.
func newCLILogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// readJobText returns the job description from a file or literal text. Both empty yields "".
func readJobText(path, text string, maxBytes int64) (string, error) {
	if path == "" {
		return text, nil
	}
	jobText, _, err := ingestion.ReadFile(path, maxBytes)
	if err != nil {
		return "", fmt.Errorf("failed to read job description %s: %w", path, err)
	}
	return jobText, nil
}

// errorKind classifies CLI failures for machine-readable output.
func errorKind(err error) string {
	var (
		formatErr  *ingestion.UnsupportedFormatError
		sizeErr    *ingestion.TooLargeError
		extractErr *ingestion.ExtractionError
	)
	switch {
	case errors.As(err, &formatErr):
		return "unsupported_format"
	case errors.As(err, &sizeErr):
		return "too_large"
	case errors.As(err, &extractErr):
		return "extraction_failed"
	default:
		return analyzer.Kind(err)
	}
}
