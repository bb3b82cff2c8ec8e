package repository

import (
	"context"
	"database/sql"

	"github.com/floodwatch/waterlog-platform/internal/model"
)

// RainfallRepo reads imported weather station observations.
type RainfallRepo struct{ DB *sql.DB }

func NewRainfallRepo(db *sql.DB) *RainfallRepo { return &RainfallRepo{DB: db} }

// ListByDate returns every station reading recorded for a date.
func (r *RainfallRepo) ListByDate(ctx context.Context, date string) ([]model.StationReading, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT station_name, lat, lng, record_date, rainfall_24h,
		rainfall_1h, rainfall_3h, rainfall_6h, temperature_c, humidity_percent
		FROM historical_rainfall WHERE record_date = ?`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.StationReading, 0, 16)
	for rows.Next() {
		var s model.StationReading
		if err := rows.Scan(&s.StationName, &s.Lat, &s.Lng, &s.RecordDate, &s.Rainfall24h,
			&s.Rainfall1h, &s.Rainfall3h, &s.Rainfall6h, &s.Temperature, &s.Humidity); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
