// Package metrics exposes pipeline run counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

// Recorder holds the pipeline's run-level collectors. A nil *Recorder is
// valid and records nothing, so metrics stay optional in wiring.
type Recorder struct {
	articlesRead    prometheus.Counter
	articlesSkipped prometheus.Counter
	eventsExtracted prometheus.Counter
	eventsByStatus  *prometheus.CounterVec
	runDuration     prometheus.Histogram
	runFailures     prometheus.Counter
}

// NewRecorder registers the collectors with the given registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		articlesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conflicttracker_articles_read_total",
			Help: "Articles fetched across all feeds.",
		}),
		articlesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conflicttracker_articles_skipped_total",
			Help: "Articles dropped as duplicate, irrelevant, or failed.",
		}),
		eventsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conflicttracker_events_extracted_total",
			Help: "Structured events produced by the extraction service.",
		}),
		eventsByStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conflicttracker_events_verified_total",
			Help: "Events by terminal verification status.",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "conflicttracker_run_duration_seconds",
			Help:    "Wall time of complete pipeline runs.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		runFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conflicttracker_run_failures_total",
			Help: "Runs that ended with a run-level error.",
		}),
	}
	reg.MustRegister(r.articlesRead, r.articlesSkipped, r.eventsExtracted, r.eventsByStatus, r.runDuration, r.runFailures)
	return r
}

// ObserveRun records one completed run report.
func (r *Recorder) ObserveRun(report domain.RunReport) {
	if r == nil {
		return
	}
	r.articlesRead.Add(float64(report.ArticlesRead))
	r.articlesSkipped.Add(float64(report.ArticlesDuplicate + report.ArticlesIrrelevant + report.ArticlesSkipped))
	r.eventsExtracted.Add(float64(report.EventsExtracted))
	for status, count := range report.StatusCounts {
		r.eventsByStatus.WithLabelValues(string(status)).Add(float64(count))
	}
	r.runDuration.Observe(report.Elapsed.Seconds())
	if report.Failed {
		r.runFailures.Inc()
	}
}
