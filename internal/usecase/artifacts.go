package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

// ArtifactWriter persists the three per-run output files: the verified
// events, the raw accepted articles, and the run summary.
type ArtifactWriter struct {
	dir string
}

// NewArtifactWriter targets the given output directory, created on demand.
func NewArtifactWriter(dir string) *ArtifactWriter {
	return &ArtifactWriter{dir: dir}
}

// Write flushes the run's artifacts, timestamped with the run start.
func (w *ArtifactWriter) Write(report domain.RunReport, articles []domain.Article, events []domain.ExtractedEvent) error {
	if w.dir == "" {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	stamp := report.StartedAt.Format("20060102T150405Z")
	if err := w.writeJSON(fmt.Sprintf("events_%s.json", stamp), events); err != nil {
		return err
	}
	if err := w.writeJSON(fmt.Sprintf("articles_%s.json", stamp), articles); err != nil {
		return err
	}
	return w.writeJSON(fmt.Sprintf("summary_%s.json", stamp), report)
}

func (w *ArtifactWriter) writeJSON(name string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// summarize renders the one-line run summary pushed to notifiers.
func summarize(report domain.RunReport) string {
	state := "completed"
	if report.Failed {
		state = "FAILED: " + report.Error
	}
	return fmt.Sprintf(
		"conflict-tracker run %s %s — %d articles read, %d duplicates, %d irrelevant, %d events (%d exported) in %s",
		report.RunID, state,
		report.ArticlesRead, report.ArticlesDuplicate, report.ArticlesIrrelevant,
		report.EventsExtracted, report.EventsExported,
		report.Elapsed.Round(time.Millisecond),
	)
}
