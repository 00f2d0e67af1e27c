package verify

import (
	"fmt"
	"strings"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

// Hard-fail floors on raw component values. A location resolved no better
// than region level, or an unparseable date, makes the event unusable no
// matter how strong the remaining signals are.
const (
	LocationFloor = 0.35
	DateFloor     = 0.35
)

// Score thresholds, evaluated descending after the hard-fail checks.
const (
	AutoPublishThreshold   = 0.85
	PendingReviewThreshold = 0.70
	LowConfidenceThreshold = 0.60
)

// strongComponentShare marks components contributing over half of their
// maximum weight; those are cited in the reasoning string.
const strongComponentShare = 0.5

// StateMachine assigns the terminal verification status for scored events.
type StateMachine struct {
	scorer *Scorer
}

// NewStateMachine wires the scorer used to produce component breakdowns.
func NewStateMachine(scorer *Scorer) *StateMachine {
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	return &StateMachine{scorer: scorer}
}

// Verify scores the event and assigns its one-time verification result.
func (m *StateMachine) Verify(event domain.ExtractedEvent) domain.VerificationResult {
	confidence, breakdown := m.scorer.Score(event)

	result := domain.VerificationResult{
		Confidence:      confidence,
		Components:      breakdown,
		Reasoning:       reasoning(confidence, breakdown),
		Recommendations: recommendations(breakdown),
	}

	switch {
	case breakdown.LocationPrecision < LocationFloor:
		result.Status = domain.StatusLocationMissing
	case breakdown.DateSpecificity < DateFloor:
		result.Status = domain.StatusDateMissing
	case confidence >= AutoPublishThreshold:
		result.Status = domain.StatusAutoPublish
	case confidence >= PendingReviewThreshold:
		result.Status = domain.StatusPendingReview
	case confidence >= LowConfidenceThreshold:
		result.Status = domain.StatusLowConfidence
	default:
		result.Status = domain.StatusReject
	}

	return result
}

type componentValue struct {
	name  string
	value float64
}

func componentValues(b domain.ScoreBreakdown) []componentValue {
	return []componentValue{
		{"source reliability", b.SourceReliability},
		{"date specificity", b.DateSpecificity},
		{"location precision", b.LocationPrecision},
		{"incident-type clarity", b.IncidentClarity},
		{"actor identification", b.ActorIdentification},
		{"fatality specificity", b.FatalitySpecificity},
		{"source-text quality", b.TextQuality},
	}
}

func reasoning(confidence float64, breakdown domain.ScoreBreakdown) string {
	var strong []string
	for _, component := range componentValues(breakdown) {
		if component.value > strongComponentShare {
			strong = append(strong, component.name)
		}
	}
	if len(strong) == 0 {
		return fmt.Sprintf("confidence %.2f with no strong supporting signals", confidence)
	}
	return fmt.Sprintf("confidence %.2f supported by %s", confidence, strings.Join(strong, ", "))
}

func recommendations(breakdown domain.ScoreBreakdown) []string {
	var recs []string
	if breakdown.LocationPrecision < 0.6 {
		recs = append(recs, "verify location details with local sources")
	}
	if breakdown.DateSpecificity < 0.8 {
		recs = append(recs, "confirm the incident date against additional reporting")
	}
	if breakdown.SourceReliability < 0.6 {
		recs = append(recs, "corroborate with a higher-reliability outlet")
	}
	if breakdown.ActorIdentification < 0.6 {
		recs = append(recs, "identify the actors involved via follow-up coverage")
	}
	if breakdown.FatalitySpecificity < 0.6 {
		recs = append(recs, "seek exact casualty figures")
	}
	if len(recs) == 0 {
		recs = append(recs, "well-documented")
	}
	return recs
}
