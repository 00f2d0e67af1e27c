// Package feed reads candidate articles from configured source feeds.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/config"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
)

// minBodyChars drops stub articles that carry no usable text.
const minBodyChars = 100

// Strategy fetches one feed kind (RSS, HTML listing, etc.).
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, feed config.FeedConfig, since time.Time) ([]domain.Article, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(strategy Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[strategy.Name()] = strategy
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if strategy, ok := r.strategies[name]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("feed strategy %s is not registered", name)
}

// Reader implements ports.ArticleSource over all configured feeds. One bad
// feed is logged and skipped; it never halts the overall read.
type Reader struct {
	registry *Registry
	feeds    []config.FeedConfig
	delay    time.Duration
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*Reader)(nil)

// NewReader wires the strategy registry with config-defined feeds. The delay
// is a politeness throttle between consecutive feed fetches.
func NewReader(registry *Registry, feeds []config.FeedConfig, delay time.Duration, logger *slog.Logger) *Reader {
	ordered := make([]config.FeedConfig, len(feeds))
	copy(ordered, feeds)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })
	return &Reader{registry: registry, feeds: ordered, delay: delay, logger: logger}
}

// FetchSince iterates the feeds in priority order and aggregates articles
// published after the cutoff, dropping titleless and under-length items.
func (r *Reader) FetchSince(ctx context.Context, since time.Time) ([]domain.Article, error) {
	if r.registry == nil {
		return nil, fmt.Errorf("feed registry is not configured")
	}

	var aggregated []domain.Article
	for i, feed := range r.feeds {
		if i > 0 && r.delay > 0 {
			select {
			case <-time.After(r.delay):
			case <-ctx.Done():
				return aggregated, ctx.Err()
			}
		}

		strategy, err := r.registry.Resolve(feed.Kind)
		if err != nil {
			r.warn("feed skipped", "feed", feed.Name, "error", err)
			continue
		}

		articles, err := strategy.Fetch(ctx, feed, since)
		if err != nil {
			r.warn("feed fetch failed", "feed", feed.Name, "error", err)
			continue
		}

		kept := 0
		for _, article := range articles {
			if article.Title == "" || len(article.Body) < minBodyChars {
				continue
			}
			if article.Source == "" {
				article.Source = feed.Name
			}
			aggregated = append(aggregated, article)
			kept++
		}
		r.debug("feed read", "feed", feed.Name, "fetched", len(articles), "kept", kept)
	}

	return aggregated, nil
}

func (r *Reader) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *Reader) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
