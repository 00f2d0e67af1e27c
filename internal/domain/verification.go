package domain

import "time"

// VerificationStatus is the terminal publication disposition of an event.
type VerificationStatus string

const (
	StatusAutoPublish     VerificationStatus = "auto_publish"
	StatusPendingReview   VerificationStatus = "pending_verification"
	StatusLowConfidence   VerificationStatus = "low_confidence"
	StatusLocationMissing VerificationStatus = "location_missing"
	StatusDateMissing     VerificationStatus = "date_missing"
	StatusReject          VerificationStatus = "reject"
)

// ScoreBreakdown carries the raw (unweighted) value of each confidence
// component, each in [0,1].
type ScoreBreakdown struct {
	SourceReliability   float64 `json:"source_reliability"`
	DateSpecificity     float64 `json:"date_specificity"`
	LocationPrecision   float64 `json:"location_precision"`
	IncidentClarity     float64 `json:"incident_clarity"`
	ActorIdentification float64 `json:"actor_identification"`
	FatalitySpecificity float64 `json:"fatality_specificity"`
	TextQuality         float64 `json:"text_quality"`
}

// VerificationResult is created once per event and never revised; a new run
// produces a new result.
type VerificationResult struct {
	Status          VerificationStatus `json:"status"`
	Confidence      float64            `json:"confidence"`
	Components      ScoreBreakdown     `json:"components"`
	Reasoning       string             `json:"reasoning"`
	Recommendations []string           `json:"recommendations"`
}

// RunReport summarizes a single pipeline invocation. A run always yields a
// report, including failed and empty runs.
type RunReport struct {
	RunID              string                     `json:"run_id"`
	StartedAt          time.Time                  `json:"started_at"`
	Elapsed            time.Duration              `json:"elapsed"`
	ArticlesRead       int                        `json:"articles_read"`
	ArticlesDuplicate  int                        `json:"articles_duplicate"`
	ArticlesIrrelevant int                        `json:"articles_irrelevant"`
	ArticlesSkipped    int                        `json:"articles_skipped"`
	EventsExtracted    int                        `json:"events_extracted"`
	EventsExported     int                        `json:"events_exported"`
	StatusCounts       map[VerificationStatus]int `json:"status_counts"`
	Failed             bool                       `json:"failed"`
	Error              string                     `json:"error,omitempty"`
}
