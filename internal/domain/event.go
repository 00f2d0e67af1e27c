package domain

import "time"

// Unknown is the sentinel used for any field the extraction service could not
// fill. Downstream stages rely on it instead of empty strings or nulls.
const Unknown = "unknown"

// Article is the raw ingested unit produced by a feed reader.
type Article struct {
	ID          string
	NearKey     string
	Title       string
	Body        string
	Summary     string
	Link        string
	Source      string
	Region      string
	PublishedAt time.Time
}

// IncidentType is a member of the closed incident taxonomy.
type IncidentType string

const (
	IncidentArmedAttack       IncidentType = "armed_attack"
	IncidentTerrorism         IncidentType = "terrorism"
	IncidentKidnapping        IncidentType = "kidnapping"
	IncidentCommunalClash     IncidentType = "communal_clash"
	IncidentMilitaryOperation IncidentType = "military_operation"
	IncidentCivilUnrest       IncidentType = "civil_unrest"
	IncidentCultClash         IncidentType = "cult_clash"
	IncidentOther             IncidentType = "other"
)

// ActorType is a member of the closed actor taxonomy.
type ActorType string

const (
	ActorMilitary      ActorType = "military"
	ActorPolice        ActorType = "police"
	ActorBokoHaram     ActorType = "boko_haram"
	ActorISWAP         ActorType = "iswap"
	ActorBandits       ActorType = "bandits"
	ActorHerdsmen      ActorType = "herdsmen"
	ActorCultists      ActorType = "cultists"
	ActorUnknownGunmen ActorType = "unknown_gunmen"
	ActorProtesters    ActorType = "protesters"
	ActorCivilians     ActorType = "civilians"
	ActorUnknown       ActorType = "unknown"
)

// PrecisionTier names the gazetteer level a geocode match resolved at.
type PrecisionTier string

const (
	PrecisionLocality  PrecisionTier = "locality"
	PrecisionSubregion PrecisionTier = "subregion"
	PrecisionRegion    PrecisionTier = "region"
)

// Location is the three-tier administrative triple. Absent parts carry the
// Unknown sentinel, never an empty string.
type Location struct {
	Region    string `json:"region"`
	Subregion string `json:"subregion"`
	Locality  string `json:"locality"`
}

// UnknownLocation returns a triple with every part set to the sentinel.
func UnknownLocation() Location {
	return Location{Region: Unknown, Subregion: Unknown, Locality: Unknown}
}

// HasRegion reports whether the region part carries a real value.
func (l Location) HasRegion() bool { return l.Region != Unknown && l.Region != "" }

// HasSubregion reports whether the subregion part carries a real value.
func (l Location) HasSubregion() bool { return l.Subregion != Unknown && l.Subregion != "" }

// HasLocality reports whether the locality part carries a real value.
func (l Location) HasLocality() bool { return l.Locality != Unknown && l.Locality != "" }

// GeocodeResult is the output of the geo resolver: the coordinate, the tier it
// matched at, and the normalized triple that produced the match.
type GeocodeResult struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Precision PrecisionTier `json:"precision"`
	Matched   Location      `json:"matched"`
}

// ExtractedEvent is the structured candidate produced per article and
// enriched stage by stage until verification assigns its terminal status.
type ExtractedEvent struct {
	IncidentDate   string              `json:"incident_date"`
	Location       Location            `json:"location"`
	IncidentType   IncidentType        `json:"incident_type"`
	ActorPrimary   ActorType           `json:"actor_primary"`
	ActorSecondary ActorType           `json:"actor_secondary,omitempty"`
	Fatalities     int                 `json:"fatalities"`
	Injuries       int                 `json:"injuries"`
	SourceRef      string              `json:"source_ref"`
	SourceName     string              `json:"source_name"`
	SourceText     string              `json:"source_text"`
	Confidence     float64             `json:"confidence"`
	Geocode        *GeocodeResult      `json:"geocode,omitempty"`
	Verification   *VerificationResult `json:"verification,omitempty"`
}

// IncidentDay parses the ISO incident date; ok is false for the Unknown
// sentinel or any malformed value.
func (e ExtractedEvent) IncidentDay() (time.Time, bool) {
	if e.IncidentDate == "" || e.IncidentDate == Unknown {
		return time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", e.IncidentDate)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
