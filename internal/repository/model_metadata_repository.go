package repository

import (
	"context"
	"database/sql"

	"github.com/floodwatch/waterlog-platform/internal/model"
)

// ModelMetadataRepo reads metadata about prediction model training runs.
type ModelMetadataRepo struct{ DB *sql.DB }

func NewModelMetadataRepo(db *sql.DB) *ModelMetadataRepo { return &ModelMetadataRepo{DB: db} }

// Latest returns the most recent training run by date. An empty table
// yields ErrNotFound; the handler substitutes a placeholder version in
// that case rather than failing the request.
func (r *ModelMetadataRepo) Latest(ctx context.Context) (model.ModelMetadata, error) {
	var m model.ModelMetadata
	var features, sources sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT model_version, accuracy, precision_score, recall_score, f1_score,
		training_samples, training_date, feature_importance, data_sources
		FROM model_metadata ORDER BY training_date DESC LIMIT 1`).Scan(
		&m.ModelVersion, &m.Accuracy, &m.Precision, &m.Recall, &m.F1Score,
		&m.TrainingSamples, &m.TrainingDate, &features, &sources)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	if err != nil {
		return m, err
	}
	if features.Valid {
		m.FeatureImportance = []byte(features.String)
	}
	if sources.Valid {
		m.DataSources = []byte(sources.String)
	}
	return m, nil
}
