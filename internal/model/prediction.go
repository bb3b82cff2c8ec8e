package model

import "time"

// PredictedHotspot is a dated, model-generated risk point from the
// `predicted_hotspots` table. Rows are produced offline by the prediction
// pipeline and only ever read here.
//
// Fields:
//  ID                  – primary key identifier.
//  PredictionDate      – date the prediction applies to (YYYY-MM-DD).
//  Name                – human-readable area name.
//  Lat, Lng            – center of the predicted risk zone.
//  Severity            – Low, Medium, High or Critical.
//  Confidence          – model confidence in [0,1].
//  PredictedRainfallMM – forecast rainfall driving the prediction.
//  RiskFactors         – raw JSON column of named factor weights.
//  RadiusMeters        – radius of the risk zone.
//  ModelVersion        – version of the model that produced the row.
type PredictedHotspot struct {
    ID                  uint64  // predicted_hotspots.id
    PredictionDate      string  // predicted_hotspots.prediction_date
    Name                string  // predicted_hotspots.name
    Lat                 float64 // predicted_hotspots.lat
    Lng                 float64 // predicted_hotspots.lng
    Severity            string  // predicted_hotspots.severity
    Confidence          float64 // predicted_hotspots.confidence_score
    PredictedRainfallMM float64 // predicted_hotspots.predicted_rainfall_mm
    RiskFactors         []byte  // predicted_hotspots.risk_factors (JSON, nullable)
    RadiusMeters        int     // predicted_hotspots.radius_meters
    ModelVersion        string  // predicted_hotspots.model_version
}

// ModelMetadata describes one training run of the prediction model from
// the `model_metadata` table. The most recent row by training date is the
// one reported by the metrics endpoint.
type ModelMetadata struct {
    ModelVersion      string    // model_metadata.model_version
    Accuracy          float64   // model_metadata.accuracy
    Precision         float64   // model_metadata.precision_score
    Recall            float64   // model_metadata.recall_score
    F1Score           float64   // model_metadata.f1_score
    TrainingSamples   int       // model_metadata.training_samples
    TrainingDate      time.Time // model_metadata.training_date
    FeatureImportance []byte    // model_metadata.feature_importance (JSON, nullable)
    DataSources       []byte    // model_metadata.data_sources (JSON, nullable)
}
