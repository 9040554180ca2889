package pipeline

import (
	"log/slog"
	"time"

	"github.com/praveena-03/docinsight/internal/extract"
	"github.com/praveena-03/docinsight/internal/monitor"
	"github.com/praveena-03/docinsight/internal/persona"
	"github.com/praveena-03/docinsight/internal/report"
)

// Worker processes a single document: extraction through the fallback
// chain, then persona detection over the extracted text.
type Worker struct {
	coordinator *extract.Coordinator
	stats       *monitor.ProcessingStats
	log         *slog.Logger
}

func NewWorker(coordinator *extract.Coordinator, stats *monitor.ProcessingStats, log *slog.Logger) *Worker {
	return &Worker{coordinator: coordinator, stats: stats, log: log}
}

// ProcessDocument runs the per-document pipeline. It never fails: every
// outcome, including total extraction failure, is a well-formed result.
func (w *Worker) ProcessDocument(path, filename string, cfg *report.PersonaConfig) report.DocumentResult {
	start := time.Now()

	res := w.coordinator.Extract(path)

	slug := ""
	if len(res.Content.TextContent) > 0 {
		requested := persona.Auto
		if cfg != nil && cfg.PersonaType != "" {
			requested = cfg.PersonaType
		}
		analysis := persona.Analyze(res.Content.TextContent, requested)
		slug = analysis.PersonaType
	}

	elapsed := time.Since(start)
	if w.stats != nil {
		w.stats.Record(elapsed.Milliseconds(), res.Error != "")
	}
	w.log.Info("document processed",
		"filename", filename,
		"method", res.Method,
		"sections", len(res.Structure.Sections),
		"paragraphs", res.Content.TotalParagraphs,
		"persona", slug,
		"duration_ms", elapsed.Milliseconds(),
		"error", res.Error,
	)

	return report.DocumentResult{
		Filename: filename,
		Result:   res,
		Persona:  slug,
	}
}
