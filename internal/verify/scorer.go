// Package verify computes the multi-factor confidence score and maps it to a
// terminal verification status.
package verify

import (
	"regexp"
	"strings"
	"time"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/quantity"
)

// Component weights. Fixed, sum to 1.0; the decomposition is a contract
// surfaced to reviewers, so changing these changes published behavior.
const (
	WeightSourceReliability   = 0.20
	WeightDateSpecificity     = 0.15
	WeightLocationPrecision   = 0.20
	WeightIncidentClarity     = 0.15
	WeightActorIdentification = 0.15
	WeightFatalitySpecificity = 0.10
	WeightTextQuality         = 0.05
)

const defaultSourceReliability = 0.5

// defaultSourceWeights carries per-outlet reliability for recognized sources.
var defaultSourceWeights = map[string]float64{
	"premiumtimesng.com":  0.9,
	"punchng.com":         0.85,
	"vanguardngr.com":     0.8,
	"dailytrust.com":      0.85,
	"channelstv.com":      0.85,
	"guardian.ng":         0.8,
	"thecable.ng":         0.8,
	"saharareporters.com": 0.65,
	"leadership.ng":       0.75,
}

var incidentClarity = map[domain.IncidentType]float64{
	domain.IncidentMilitaryOperation: 0.9,
	domain.IncidentArmedAttack:       0.85,
	domain.IncidentTerrorism:         0.85,
	domain.IncidentKidnapping:        0.8,
	domain.IncidentCommunalClash:     0.7,
	domain.IncidentCultClash:         0.7,
	domain.IncidentCivilUnrest:       0.5,
	domain.IncidentOther:             0.4,
}

var actorClarity = map[domain.ActorType]float64{
	domain.ActorMilitary:      0.9,
	domain.ActorPolice:        0.9,
	domain.ActorBokoHaram:     0.85,
	domain.ActorISWAP:         0.85,
	domain.ActorBandits:       0.7,
	domain.ActorHerdsmen:      0.7,
	domain.ActorCultists:      0.7,
	domain.ActorProtesters:    0.6,
	domain.ActorUnknownGunmen: 0.6,
	domain.ActorCivilians:     0.5,
	domain.ActorUnknown:       0.3,
}

var (
	digitExpr       = regexp.MustCompile(`\d+`)
	quoteExpr       = regexp.MustCompile(`["“”]`)
	attributionExpr = regexp.MustCompile(`(?i)\b(police|military|army|spokes(man|person)|official|governor|statement)\b.{0,40}\b(said|confirmed|announced|stated)\b|\bconfirmed\b`)
)

// Scorer computes the weighted confidence score for extracted events.
type Scorer struct {
	sourceWeights map[string]float64
	now           func() time.Time
}

// NewScorer builds a scorer; extra per-source weights override the defaults.
func NewScorer(sourceWeights map[string]float64) *Scorer {
	merged := make(map[string]float64, len(defaultSourceWeights)+len(sourceWeights))
	for source, weight := range defaultSourceWeights {
		merged[source] = weight
	}
	for source, weight := range sourceWeights {
		merged[source] = weight
	}
	return &Scorer{sourceWeights: merged, now: time.Now}
}

// Score returns the aggregate confidence in [0,1] and the raw per-component
// breakdown used by the state machine and the reviewer-facing reasoning.
func (s *Scorer) Score(event domain.ExtractedEvent) (float64, domain.ScoreBreakdown) {
	breakdown := domain.ScoreBreakdown{
		SourceReliability:   s.sourceReliability(event.SourceName),
		DateSpecificity:     s.dateSpecificity(event),
		LocationPrecision:   s.locationPrecision(event),
		IncidentClarity:     incidentClarity[event.IncidentType],
		ActorIdentification: s.actorIdentification(event),
		FatalitySpecificity: s.fatalitySpecificity(event.SourceText),
		TextQuality:         s.textQuality(event.SourceText),
	}

	total := breakdown.SourceReliability*WeightSourceReliability +
		breakdown.DateSpecificity*WeightDateSpecificity +
		breakdown.LocationPrecision*WeightLocationPrecision +
		breakdown.IncidentClarity*WeightIncidentClarity +
		breakdown.ActorIdentification*WeightActorIdentification +
		breakdown.FatalitySpecificity*WeightFatalitySpecificity +
		breakdown.TextQuality*WeightTextQuality

	return clamp(total), breakdown
}

func (s *Scorer) sourceReliability(source string) float64 {
	if weight, ok := s.sourceWeights[strings.ToLower(strings.TrimSpace(source))]; ok {
		return weight
	}
	return defaultSourceReliability
}

// dateSpecificity steps down with incident age: within a day 1.0, within a
// week 0.8, within a month 0.6, older 0.4, unparseable 0.
func (s *Scorer) dateSpecificity(event domain.ExtractedEvent) float64 {
	day, ok := event.IncidentDay()
	if !ok {
		return 0
	}
	age := s.now().UTC().Sub(day)
	switch {
	case age <= 24*time.Hour:
		return 1.0
	case age <= 7*24*time.Hour:
		return 0.8
	case age <= 30*24*time.Hour:
		return 0.6
	default:
		return 0.4
	}
}

// locationPrecision credits each present tier (locality 0.5, subregion 0.3,
// region 0.2) plus a bonus when the triple round-trips through the gazetteer.
func (s *Scorer) locationPrecision(event domain.ExtractedEvent) float64 {
	var score float64
	if event.Location.HasLocality() {
		score += 0.5
	}
	if event.Location.HasSubregion() {
		score += 0.3
	}
	if event.Location.HasRegion() {
		score += 0.2
	}
	if event.Geocode != nil {
		score += 0.1
	}
	return clamp(score)
}

func (s *Scorer) actorIdentification(event domain.ExtractedEvent) float64 {
	score := actorClarity[event.ActorPrimary]
	if event.ActorSecondary != "" && event.ActorSecondary != domain.ActorUnknown {
		score += 0.1
	}
	return clamp(score)
}

// fatalitySpecificity is highest when an exact figure appears verbatim in the
// source text, lower for vague casualty language, lowest (non-zero) when no
// casualties are mentioned at all.
func (s *Scorer) fatalitySpecificity(sourceText string) float64 {
	mentions := quantity.MentionsCasualties(sourceText)
	switch {
	case mentions && digitExpr.MatchString(sourceText):
		return 1.0
	case mentions:
		return 0.6
	default:
		return 0.3
	}
}

func (s *Scorer) textQuality(sourceText string) float64 {
	var score float64
	if len(sourceText) >= 200 {
		score += 0.2
	}
	if len(sourceText) >= 500 {
		score += 0.2
	}
	if quoteExpr.MatchString(sourceText) {
		score += 0.3
	}
	if attributionExpr.MatchString(sourceText) {
		score += 0.3
	}
	return clamp(score)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
