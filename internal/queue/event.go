// Package queue defines message payloads exchanged over the message broker.
package queue

// ReportCreatedEvent is published when a citizen files a new report. It
// carries enough information for downstream consumers to log, notify the
// assigned authority, or feed analytics without querying the primary
// database.
type ReportCreatedEvent struct {
    ReportID    uint64  `json:"report_id"`
    ReporterID  uint64  `json:"reporter_id"`
    Title       string  `json:"title"`
    Severity    string  `json:"severity"`
    AuthorityID uint64  `json:"authority_id"`
    Lat         float64 `json:"lat"`
    Lng         float64 `json:"lng"`
    CreatedAt   string  `json:"created_at"`
}

// ReportResolvedEvent is published when an authority resolves a report.
type ReportResolvedEvent struct {
    ReportID    uint64 `json:"report_id"`
    ResolvedBy  uint64 `json:"resolved_by"`
    AuthorityID uint64 `json:"authority_id"`
    Note        string `json:"note"`
    ResolvedAt  string `json:"resolved_at"`
}
