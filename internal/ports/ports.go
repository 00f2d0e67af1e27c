package ports

import (
	"context"
	"time"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

// ArticleSource pulls candidate articles published since the given cutoff.
type ArticleSource interface {
	FetchSince(ctx context.Context, since time.Time) ([]domain.Article, error)
}

// DedupStore holds the seen-identifier set shared across runs. Record reports
// whether the key was newly added, so check-then-record stays a single call
// for stores shared between workers.
type DedupStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	Record(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context) error
	Close() error
}

// EventExtractor turns articles into structured candidate events via the
// external extraction service.
type EventExtractor interface {
	Extract(ctx context.Context, article domain.Article) (*domain.ExtractedEvent, error)
	ExtractBatch(ctx context.Context, articles []domain.Article) ([]domain.ExtractedEvent, error)
}

// EventRepository persists verified events for downstream consumers.
type EventRepository interface {
	SaveEvents(ctx context.Context, runID string, events []domain.ExtractedEvent) error
}

// Notifier publishes run summaries to an external channel.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
