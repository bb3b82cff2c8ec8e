package repository

import (
	"context"
	"database/sql"

	"github.com/floodwatch/waterlog-platform/internal/model"
)

// IncidentRepo reads the historical water-logging record used by the
// filtered history endpoint.
type IncidentRepo struct{ DB *sql.DB }

func NewIncidentRepo(db *sql.DB) *IncidentRepo { return &IncidentRepo{DB: db} }

// IncidentFilter narrows ListFiltered results. Empty strings mean "no
// filter"; dates are YYYY-MM-DD.
type IncidentFilter struct {
	StartDate string
	EndDate   string
	Severity  string
}

// ListFiltered returns incidents matching every set filter, newest first,
// capped at 100 rows.
func (r *IncidentRepo) ListFiltered(ctx context.Context, f IncidentFilter) ([]model.HistoricalIncident, error) {
	query := `SELECT id, incident_date, location, lat, lng, severity, rainfall_mm, description
		FROM historical_incidents WHERE 1=1`
	args := []interface{}{}
	if f.StartDate != "" {
		query += " AND incident_date >= ?"
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += " AND incident_date <= ?"
		args = append(args, f.EndDate)
	}
	if f.Severity != "" {
		query += " AND severity = ?"
		args = append(args, f.Severity)
	}
	query += " ORDER BY incident_date DESC LIMIT 100"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.HistoricalIncident, 0, 32)
	for rows.Next() {
		var in model.HistoricalIncident
		if err := rows.Scan(&in.ID, &in.IncidentDate, &in.Location, &in.Lat, &in.Lng,
			&in.Severity, &in.RainfallMM, &in.Description); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
