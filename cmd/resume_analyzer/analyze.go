package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume and optionally match it against a job description",
	Long: `Extracts text from a PDF, DOCX, TXT or HTML resume, scores it and prints recommendations.

A job description can be given as a file (--job) or inline (--job-text) to add keyword matching.`,
	RunE: runAnalyze,
}

var (
	analyzeResume  string
	analyzeJob     string
	analyzeJobText string
	analyzeCatalog string
	analyzeConfig  string
	analyzeOutput  string
	analyzeJSON    bool
	analyzeVerbose bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file: .pdf, .docx, .txt or .html (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job description file")
	analyzeCmd.Flags().StringVar(&analyzeJobText, "job-text", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeCatalog, "catalog", "", "Path to a custom skill catalog JSON file")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "Path to config.json file")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the report to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print debug information to stderr")

	if err := analyzeCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-text")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	logger := newCLILogger(cmd.ErrOrStderr(), analyzeVerbose)

	cfg, err := loadCLIConfig(analyzeConfig)
	if err != nil {
		return err
	}
	catalogPath := cfg.CatalogPath
	if analyzeCatalog != "" {
		catalogPath = analyzeCatalog
	}

	a, err := newAnalyzer(catalogPath)
	if err != nil {
		return err
	}

	result, err := analyzeFiles(a, analyzeRequest{
		ResumePath: analyzeResume,
		JobPath:    analyzeJob,
		JobText:    analyzeJobText,
		MaxBytes:   cfg.MaxUploadBytes,
	}, logger)
	if err != nil {
		return err
	}

	var report bytes.Buffer
	if err := writeResult(&report, result, analyzeJSON); err != nil {
		return err
	}

	if analyzeOutput == "" {
		_, err = report.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := os.WriteFile(analyzeOutput, report.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", analyzeOutput)
	return nil
}

// analyzeRequest names the inputs of a single CLI analysis
type analyzeRequest struct {
	ResumePath string
	JobPath    string
	JobText    string
	MaxBytes   int64
}

func analyzeFiles(a *analyzer.Analyzer, req analyzeRequest, logger *slog.Logger) (*types.AnalysisResult, error) {
	resumeText, meta, err := ingestion.ReadFile(req.ResumePath, req.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", req.ResumePath, err)
	}
	logger.Debug("resume extracted",
		slog.String("file", meta.Filename),
		slog.String("format", string(meta.Format)),
		slog.Int("bytes", meta.Bytes),
		slog.String("sha256", meta.Hash),
	)

	jobText, err := readJobText(req.JobPath, req.JobText, req.MaxBytes)
	if err != nil {
		return nil, err
	}

	result, err := a.Analyze(resumeText, jobText)
	if err != nil {
		return nil, err
	}
	logger.Debug("analysis complete",
		slog.Int("overall_score", result.OverallScore),
		slog.Int("recommendations", len(result.Recommendations)),
		slog.Bool("job_matched", result.JobAnalysis != nil),
	)
	return result, nil
}

// writeResult renders result as indented JSON or as the boxed text report.
func writeResult(w io.Writer, result *types.AnalysisResult, asJSON bool) error {
	if !asJSON {
		observability.NewPrinter(w).PrintAnalysis(result)
		return nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
