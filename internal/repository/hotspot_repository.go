package repository

import (
	"context"
	"database/sql"

	"github.com/floodwatch/waterlog-platform/internal/model"
)

// HotspotRepo reads the static flood-risk overlay.
type HotspotRepo struct{ DB *sql.DB }

func NewHotspotRepo(db *sql.DB) *HotspotRepo { return &HotspotRepo{DB: db} }

// ListAll returns every curated hotspot, unfiltered.
func (r *HotspotRepo) ListAll(ctx context.Context) ([]model.Hotspot, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name,lat,lng,severity FROM hotspots")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Hotspot, 0, 32)
	for rows.Next() {
		var h model.Hotspot
		if err := rows.Scan(&h.ID, &h.Name, &h.Lat, &h.Lng, &h.Severity); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
