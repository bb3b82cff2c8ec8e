package model

// Hotspot is a static, curated geographic point of known flooding risk
// from the `hotspots` table. It is a read-only map overlay; nothing in
// the application mutates it.
type Hotspot struct {
    ID       uint64  // hotspots.id
    Name     string  // hotspots.name
    Lat      float64 // hotspots.lat
    Lng      float64 // hotspots.lng
    Severity string  // hotspots.severity
}
