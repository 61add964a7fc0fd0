package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "good.txt", testResume),
		writeFile(t, dir, "bad.exe", "MZ"),
		writeFile(t, dir, "empty.txt", "   "),
		writeFile(t, dir, "other.html", "<html><body><p>Managed Kubernetes clusters with Terraform.</p></body></html>"),
	}

	a, err := newAnalyzer("")
	require.NoError(t, err)

	items, err := runBatch(context.Background(), a, batchOptions{
		Files:       files,
		JobText:     testJob,
		Concurrency: 2,
	}, newCLILogger(io.Discard, false))
	require.NoError(t, err)
	require.Len(t, items, len(files))

	ids := make(map[string]bool)
	for i, item := range items {
		assert.Equal(t, files[i], item.File, "items keep argument order")
		_, parseErr := uuid.Parse(item.ID)
		assert.NoError(t, parseErr)
		ids[item.ID] = true
		assert.True(t, (item.Result == nil) != (item.Error == nil), "exactly one of result and error")
	}
	assert.Len(t, ids, len(files))

	require.NotNil(t, items[0].Result)
	assert.Equal(t, ingestion.FormatText, items[0].Source.Format)
	assert.Equal(t, 33, items[0].Result.JobAnalysis.MatchPercentage)

	assert.Equal(t, "unsupported_format", items[1].Error.Kind)
	assert.Equal(t, "invalid_input", items[2].Error.Kind)

	require.NotNil(t, items[3].Result)
	assert.Contains(t, items[3].Result.TechnicalSkills, "kubernetes")
}

func TestRunBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	a, err := newAnalyzer("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runBatch(ctx, a, batchOptions{
		Files:       []string{writeFile(t, dir, "good.txt", testResume)},
		Concurrency: 1,
	}, newCLILogger(io.Discard, false))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteBatch(t *testing.T) {
	items := []batchItem{
		{ID: "a", File: "one.txt"},
		{ID: "b", File: "two.exe"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeBatch(&buf, items))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for i, line := range lines {
		var decoded batchItem
		require.NoError(t, json.Unmarshal([]byte(line), &decoded))
		assert.Equal(t, items[i].ID, decoded.ID)
		assert.NotContains(t, line, `"result"`)
	}
}

func TestBatchCommand_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", testResume)
	bad := writeFile(t, dir, "bad.exe", "MZ")

	stdout, err := execute(t, "batch", "--job-text", testJob, "--concurrency", "2", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 resumes failed")
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 2)
}
