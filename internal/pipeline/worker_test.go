package pipeline

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/praveena-03/docinsight/internal/document"
	"github.com/praveena-03/docinsight/internal/extract"
	"github.com/praveena-03/docinsight/internal/monitor"
)

type stubBackend struct {
	res *document.ExtractionResult
}

func (s stubBackend) Name() document.Method { return "stub" }

func (s stubBackend) Extract(path string) (*document.ExtractionResult, error) {
	return s.res, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorkerProcessDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 placeholder"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	res := &document.ExtractionResult{
		Metadata:  document.DefaultMetadata(),
		Structure: document.Structure{TotalPages: 1},
		Content: document.Content{
			TextContent: []document.Paragraph{
				{Text: "Plan your vacation: destination, hotel and restaurant tips for tourism.", Page: 1},
			},
			TotalParagraphs: 1,
		},
		Method: "stub",
	}
	coordinator := extract.NewCoordinatorWith(discardLogger(), stubBackend{res: res})
	stats := monitor.NewProcessingStats(time.Hour)
	w := NewWorker(coordinator, stats, discardLogger())

	dr := w.ProcessDocument(path, "guide.pdf", nil)
	if dr.Err != "" {
		t.Fatalf("unexpected error: %q", dr.Err)
	}
	if dr.Filename != "guide.pdf" {
		t.Fatalf("unexpected filename: %q", dr.Filename)
	}
	if dr.Persona != "travel_planner" {
		t.Fatalf("expected travel_planner detected, got %q", dr.Persona)
	}
	if snap := stats.Snapshot(); snap.Count != 1 || snap.Processed != 1 || snap.Failed != 0 {
		t.Fatalf("expected one successful sample, got %+v", snap)
	}
}

func TestWorkerRecordsFailureStats(t *testing.T) {
	coordinator := extract.NewCoordinatorWith(discardLogger())
	stats := monitor.NewProcessingStats(time.Hour)
	w := NewWorker(coordinator, stats, discardLogger())

	w.ProcessDocument(filepath.Join(t.TempDir(), "missing.pdf"), "missing.pdf", nil)

	snap := stats.Snapshot()
	if snap.Processed != 1 || snap.Failed != 1 {
		t.Fatalf("expected failed document counted, got %+v", snap)
	}
}

func TestWorkerProcessDocumentTotalFailure(t *testing.T) {
	coordinator := extract.NewCoordinatorWith(discardLogger())
	w := NewWorker(coordinator, nil, discardLogger())

	dr := w.ProcessDocument(filepath.Join(t.TempDir(), "missing.pdf"), "missing.pdf", nil)
	if dr.Result == nil || dr.Result.Error != "File not found" {
		t.Fatalf("expected soft failure result, got %+v", dr.Result)
	}
	if dr.Persona != "" {
		t.Fatalf("no persona should be detected without content, got %q", dr.Persona)
	}
}
