package repository

import (
	"context"
	"database/sql"

	"github.com/floodwatch/waterlog-platform/internal/model"
)

// PredictionRepo reads the pre-computed hotspot predictions produced by
// the offline pipeline. The application never writes these tables.
type PredictionRepo struct{ DB *sql.DB }

func NewPredictionRepo(db *sql.DB) *PredictionRepo { return &PredictionRepo{DB: db} }

// ListByDate returns every predicted hotspot for a date, most confident
// first. A date with no computed prediction yields an empty slice, which
// is a valid result and distinct from a failure.
func (r *PredictionRepo) ListByDate(ctx context.Context, date string) ([]model.PredictedHotspot, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, prediction_date, name, lat, lng, severity, confidence_score,
		predicted_rainfall_mm, risk_factors, radius_meters, model_version
		FROM predicted_hotspots WHERE prediction_date = ?
		ORDER BY confidence_score DESC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.PredictedHotspot, 0, 16)
	for rows.Next() {
		var p model.PredictedHotspot
		var factors sql.NullString
		if err := rows.Scan(&p.ID, &p.PredictionDate, &p.Name, &p.Lat, &p.Lng, &p.Severity,
			&p.Confidence, &p.PredictedRainfallMM, &factors, &p.RadiusMeters, &p.ModelVersion); err != nil {
			return nil, err
		}
		if factors.Valid {
			p.RiskFactors = []byte(factors.String)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SeverityCount is one row of the stats severity breakdown.
type SeverityCount struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// DateCount pairs a prediction date with the number of hotspots computed
// for it.
type DateCount struct {
	PredictionDate string `json:"prediction_date"`
	HotspotCount   int    `json:"hotspot_count"`
}

// Stats aggregates prediction coverage: how many distinct dates have
// predictions, the severity breakdown across all rows, and the ten most
// recent dates with their hotspot counts.
func (r *PredictionRepo) Stats(ctx context.Context) (totalDates int, bySeverity []SeverityCount, recent []DateCount, err error) {
	if err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT prediction_date) FROM predicted_hotspots").Scan(&totalDates); err != nil {
		return 0, nil, nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT severity, COUNT(*) FROM predicted_hotspots GROUP BY severity")
	if err != nil {
		return 0, nil, nil, err
	}
	defer rows.Close()
	bySeverity = make([]SeverityCount, 0, 4)
	for rows.Next() {
		var sc SeverityCount
		if err := rows.Scan(&sc.Severity, &sc.Count); err != nil {
			return 0, nil, nil, err
		}
		bySeverity = append(bySeverity, sc)
	}
	if err = rows.Err(); err != nil {
		return 0, nil, nil, err
	}

	recentRows, err := r.DB.QueryContext(ctx,
		`SELECT prediction_date, COUNT(*) FROM predicted_hotspots
		GROUP BY prediction_date ORDER BY prediction_date DESC LIMIT 10`)
	if err != nil {
		return 0, nil, nil, err
	}
	defer recentRows.Close()
	recent = make([]DateCount, 0, 10)
	for recentRows.Next() {
		var dc DateCount
		if err := recentRows.Scan(&dc.PredictionDate, &dc.HotspotCount); err != nil {
			return 0, nil, nil, err
		}
		recent = append(recent, dc)
	}
	return totalDates, bySeverity, recent, recentRows.Err()
}
