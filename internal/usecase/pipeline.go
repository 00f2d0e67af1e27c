package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/geo"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/infrastructure/metrics"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/relevance"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/verify"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source              ports.ArticleSource
	Store               ports.DedupStore
	Filter              *relevance.Filter
	Extractor           ports.EventExtractor
	Geo                 *geo.Resolver
	Verifier            *verify.StateMachine
	Repository          ports.EventRepository
	Notifier            ports.Notifier
	Metrics             *metrics.Recorder
	Artifacts           *ArtifactWriter
	Logger              *slog.Logger
	LookBack            time.Duration
	ExportMinConfidence float64
	ScopedSources       map[string]bool
}

// Pipeline sequences the extraction-and-verification workflow: read feeds,
// dedup and filter, extract, geocode, verify, persist artifacts, export.
type Pipeline struct {
	deps PipelineDeps
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.LookBack <= 0 {
		deps.LookBack = 24 * time.Hour
	}
	return &Pipeline{deps: deps}
}

// Run executes one complete pipeline invocation. It always returns a report:
// run-level failures are recorded in it, and whatever partial artifacts exist
// are flushed before returning.
func (p *Pipeline) Run(ctx context.Context) domain.RunReport {
	report := domain.RunReport{
		RunID:        uuid.NewString(),
		StartedAt:    time.Now().UTC(),
		StatusCounts: map[domain.VerificationStatus]int{},
	}

	var events []domain.ExtractedEvent
	var accepted []domain.Article

	defer func() {
		report.Elapsed = time.Since(report.StartedAt)
		p.flush(ctx, &report, accepted, events)
		p.deps.Metrics.ObserveRun(report)
	}()

	articles, err := p.deps.Source.FetchSince(ctx, report.StartedAt.Add(-p.deps.LookBack))
	if err != nil {
		p.fail(&report, "fetch feeds", err)
		return report
	}
	report.ArticlesRead = len(articles)

	accepted = p.dedupAndFilter(ctx, articles, &report)

	events, err = p.deps.Extractor.ExtractBatch(ctx, accepted)
	if err != nil {
		p.fail(&report, "extract events", err)
		events = nil
		return report
	}
	report.EventsExtracted = len(events)
	report.ArticlesSkipped = len(accepted) - len(events)

	for i := range events {
		p.geocode(&events[i])
		result := p.deps.Verifier.Verify(events[i])
		events[i].Verification = &result
		events[i].Confidence = result.Confidence
		report.StatusCounts[result.Status]++
	}

	p.export(ctx, &report, events)
	return report
}

// dedupAndFilter drops previously-seen, near-duplicate, and irrelevant
// articles. Store errors degrade to accepting the article rather than
// aborting the run.
func (p *Pipeline) dedupAndFilter(ctx context.Context, articles []domain.Article, report *domain.RunReport) []domain.Article {
	var accepted []domain.Article
	for _, article := range articles {
		fresh, err := p.deps.Store.Record(ctx, article.ID)
		if err != nil {
			p.warn("dedup store error, accepting article", "article", article.ID, "error", err)
			fresh = true
		}
		if !fresh {
			report.ArticlesDuplicate++
			continue
		}

		if article.NearKey != "" {
			freshNear, err := p.deps.Store.Record(ctx, article.NearKey)
			if err == nil && !freshNear {
				report.ArticlesDuplicate++
				continue
			}
		}

		if p.deps.Filter != nil {
			scoped := p.deps.ScopedSources[article.Source]
			if !p.deps.Filter.IsRelevant(article.Title, article.Body, article.Summary, scoped) {
				report.ArticlesIrrelevant++
				continue
			}
		}

		accepted = append(accepted, article)
	}
	return accepted
}

func (p *Pipeline) geocode(event *domain.ExtractedEvent) {
	if p.deps.Geo == nil {
		return
	}
	event.Geocode = p.deps.Geo.Resolve(
		event.Location.Region,
		event.Location.Subregion,
		event.Location.Locality,
	)
}

// export hands verified events above the minimum confidence to the
// downstream repository. Export failures are logged, not fatal: the run's
// artifacts already carry the full output.
func (p *Pipeline) export(ctx context.Context, report *domain.RunReport, events []domain.ExtractedEvent) {
	if p.deps.Repository == nil || len(events) == 0 {
		return
	}
	var exportable []domain.ExtractedEvent
	for _, event := range events {
		if event.Confidence >= p.deps.ExportMinConfidence {
			exportable = append(exportable, event)
		}
	}
	if len(exportable) == 0 {
		return
	}
	if err := p.deps.Repository.SaveEvents(ctx, report.RunID, exportable); err != nil {
		p.warn("export to storage failed", "error", err)
		return
	}
	report.EventsExported = len(exportable)
}

// flush persists dedup state and run artifacts, then notifies. Runs on every
// exit path so partial state survives run-level failures.
func (p *Pipeline) flush(ctx context.Context, report *domain.RunReport, articles []domain.Article, events []domain.ExtractedEvent) {
	if p.deps.Store != nil {
		if err := p.deps.Store.Save(ctx); err != nil {
			p.warn("persist dedup state failed", "error", err)
		}
	}
	if p.deps.Artifacts != nil {
		if err := p.deps.Artifacts.Write(*report, articles, events); err != nil {
			p.warn("write run artifacts failed", "error", err)
		}
	}
	if p.deps.Notifier != nil {
		if err := p.deps.Notifier.PublishSummary(ctx, summarize(*report)); err != nil {
			p.warn("publish run summary failed", "error", err)
		}
	}
	p.info("run finished",
		"run_id", report.RunID,
		"articles", report.ArticlesRead,
		"events", report.EventsExtracted,
		"failed", report.Failed,
		"elapsed", report.Elapsed.Round(time.Millisecond),
	)
}

func (p *Pipeline) fail(report *domain.RunReport, stage string, err error) {
	report.Failed = true
	report.Error = stage + ": " + err.Error()
	p.warn("run failed", "stage", stage, "error", err)
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.deps.Logger != nil {
		p.deps.Logger.Warn(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.deps.Logger != nil {
		p.deps.Logger.Info(msg, args...)
	}
}
