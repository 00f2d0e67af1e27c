package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
)

// PostgresRepository persists verified events for the analytics application.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.EventRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveEvents upserts the events of one run keyed on the source reference, so
// re-running a window never duplicates rows.
func (r *PostgresRepository) SaveEvents(ctx context.Context, runID string, events []domain.ExtractedEvent) error {
	if r.db == nil || len(events) == 0 {
		return nil
	}

	for _, event := range events {
		var lat, lon sql.NullFloat64
		var precision sql.NullString
		if event.Geocode != nil {
			lat = sql.NullFloat64{Float64: event.Geocode.Latitude, Valid: true}
			lon = sql.NullFloat64{Float64: event.Geocode.Longitude, Valid: true}
			precision = sql.NullString{String: string(event.Geocode.Precision), Valid: true}
		}

		status := ""
		if event.Verification != nil {
			status = string(event.Verification.Status)
		}

		query := r.builder.
			Insert("conflict_events").
			Columns(
				"source_ref", "run_id", "incident_date", "region", "subregion", "locality",
				"incident_type", "actor_primary", "actor_secondary",
				"fatalities", "injuries", "latitude", "longitude", "precision",
				"confidence", "status", "source_name",
			).
			Values(
				event.SourceRef, runID, event.IncidentDate,
				event.Location.Region, event.Location.Subregion, event.Location.Locality,
				event.IncidentType, event.ActorPrimary, event.ActorSecondary,
				event.Fatalities, event.Injuries, lat, lon, precision,
				event.Confidence, status, event.SourceName,
			).
			Suffix(`ON CONFLICT (source_ref) DO UPDATE SET
				confidence = EXCLUDED.confidence,
				status = EXCLUDED.status,
				run_id = EXCLUDED.run_id,
				updated_at = NOW()`)

		if _, err := query.RunWith(r.db).ExecContext(ctx); err != nil {
			return fmt.Errorf("upsert event %s: %w", event.SourceRef, err)
		}
	}

	return nil
}
