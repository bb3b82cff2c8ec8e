package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var predictionCols = []string{
	"id", "prediction_date", "name", "lat", "lng", "severity", "confidence_score",
	"predicted_rainfall_mm", "risk_factors", "radius_meters", "model_version",
}

func TestPredictionsListByDate_OrderedAndDecoded(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPredictionRepo(db)

	rows := sqlmock.NewRows(predictionCols).
		AddRow(1, "2026-07-15", "Minto Bridge", 28.632, 77.232, "Critical", 0.92,
			85.5, `{"drainage":"poor"}`, 500, "rf-v3").
		AddRow(2, "2026-07-15", "ITO Crossing", 28.628, 77.241, "High", 0.71,
			60.0, nil, 350, "rf-v3")
	mock.ExpectQuery("FROM predicted_hotspots WHERE prediction_date = \\?\\s+ORDER BY confidence_score DESC").
		WithArgs("2026-07-15").
		WillReturnRows(rows)

	out, err := repo.ListByDate(context.Background(), "2026-07-15")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Minto Bridge", out[0].Name)
	require.JSONEq(t, `{"drainage":"poor"}`, string(out[0].RiskFactors))
	require.Nil(t, out[1].RiskFactors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionsListByDate_NoDataIsNotAnError(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPredictionRepo(db)

	mock.ExpectQuery("FROM predicted_hotspots").
		WithArgs("2031-01-01").
		WillReturnRows(sqlmock.NewRows(predictionCols))

	out, err := repo.ListByDate(context.Background(), "2031-01-01")
	require.NoError(t, err)
	require.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionStats(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPredictionRepo(db)

	mock.ExpectQuery("SELECT COUNT\\(DISTINCT prediction_date\\) FROM predicted_hotspots").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery("SELECT severity, COUNT\\(\\*\\) FROM predicted_hotspots GROUP BY severity").
		WillReturnRows(sqlmock.NewRows([]string{"severity", "count"}).
			AddRow("High", 120).AddRow("Critical", 30))
	mock.ExpectQuery("GROUP BY prediction_date ORDER BY prediction_date DESC LIMIT 10").
		WillReturnRows(sqlmock.NewRows([]string{"prediction_date", "count"}).
			AddRow("2026-07-15", 12).AddRow("2026-07-14", 9))

	total, bySev, recent, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, total)
	require.Len(t, bySev, 2)
	require.Len(t, recent, 2)
	require.Equal(t, "2026-07-15", recent[0].PredictionDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentsFiltered_AllFilters(t *testing.T) {
	db, mock := newDB(t)
	repo := NewIncidentRepo(db)

	mock.ExpectQuery("WHERE 1=1 AND incident_date >= \\? AND incident_date <= \\? AND severity = \\? ORDER BY incident_date DESC LIMIT 100").
		WithArgs("2025-06-01", "2025-09-30", "High").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "incident_date", "location", "lat", "lng", "severity", "rainfall_mm", "description",
		}).AddRow(5, time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC),
			"Minto Bridge", 28.632, 77.232, "High", 92.0, "Underpass submerged"))

	out, err := repo.ListFiltered(context.Background(), IncidentFilter{
		StartDate: "2025-06-01", EndDate: "2025-09-30", Severity: "High",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Minto Bridge", out[0].Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentsFiltered_NoFilters(t *testing.T) {
	db, mock := newDB(t)
	repo := NewIncidentRepo(db)

	mock.ExpectQuery("WHERE 1=1 ORDER BY incident_date DESC LIMIT 100").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "incident_date", "location", "lat", "lng", "severity", "rainfall_mm", "description",
		}))

	out, err := repo.ListFiltered(context.Background(), IncidentFilter{})
	require.NoError(t, err)
	require.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModelMetadataLatest_EmptyTable(t *testing.T) {
	db, mock := newDB(t)
	repo := NewModelMetadataRepo(db)

	mock.ExpectQuery("FROM model_metadata ORDER BY training_date DESC LIMIT 1").
		WillReturnRows(sqlmock.NewRows([]string{
			"model_version", "accuracy", "precision_score", "recall_score", "f1_score",
			"training_samples", "training_date", "feature_importance", "data_sources",
		}))

	_, err := repo.Latest(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}
