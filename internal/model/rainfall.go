package model

import "time"

// StationReading is one weather station observation for a given date from
// the `historical_rainfall` table. Short-window readings and temperature
// are nullable because older imports only carried a 24h total.
type StationReading struct {
    StationName string   // historical_rainfall.station_name
    Lat         float64  // historical_rainfall.lat
    Lng         float64  // historical_rainfall.lng
    RecordDate  string   // historical_rainfall.record_date
    Rainfall24h float64  // historical_rainfall.rainfall_24h
    Rainfall1h  *float64 // historical_rainfall.rainfall_1h (nullable)
    Rainfall3h  *float64 // historical_rainfall.rainfall_3h (nullable)
    Rainfall6h  *float64 // historical_rainfall.rainfall_6h (nullable)
    Temperature *float64 // historical_rainfall.temperature_c (nullable)
    Humidity    *int     // historical_rainfall.humidity_percent (nullable)
}

// HistoricalIncident is a past water-logging event from the
// `historical_incidents` table, used for the filtered history endpoint.
type HistoricalIncident struct {
    ID           uint64    // historical_incidents.id
    IncidentDate time.Time // historical_incidents.incident_date
    Location     string    // historical_incidents.location
    Lat          float64   // historical_incidents.lat
    Lng          float64   // historical_incidents.lng
    Severity     string    // historical_incidents.severity
    RainfallMM   *float64  // historical_incidents.rainfall_mm (nullable)
    Description  *string   // historical_incidents.description (nullable)
}
