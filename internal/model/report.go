package model

import "time"

// Report status values. A report is created Open, may nominally pass
// through In Progress, and ends at Resolved. Resolved is terminal; the
// resolve endpoint refuses to touch an already resolved report.
const (
    StatusOpen       = "Open"
    StatusInProgress = "In Progress"
    StatusResolved   = "Resolved"
)

// Severity values shared by reports, hotspots and historical incidents.
const (
    SeverityLow      = "Low"
    SeverityMedium   = "Medium"
    SeverityHigh     = "High"
    SeverityCritical = "Critical"
)

// Report is a citizen-submitted water-logging incident as stored in the
// `reports` table. Resolution fields stay NULL until an authority resolves
// the report.
//
// Fields:
//  ID                   – primary key identifier.
//  ReporterID           – user who filed the report.
//  Title                – short summary.
//  Description          – free-text detail.
//  Severity             – Low, Medium, High or Critical.
//  Status               – Open, In Progress or Resolved.
//  AssignedAuthorityID  – authority responsible for the location.
//  Lat, Lng             – incident coordinates.
//  ImageKey             – media store key of the uploaded photo (nullable).
//  ResolutionNote       – note written by the resolving authority (nullable).
//  ResolutionProofKey   – media store key of the resolution proof (nullable).
//  CreatedAt            – creation timestamp.
//  ResolvedAt           – resolution timestamp (null while unresolved).
type Report struct {
    ID                  uint64     // reports.id
    ReporterID          uint64     // reports.reporter_id
    Title               string     // reports.title
    Description         string     // reports.description
    Severity            string     // reports.severity
    Status              string     // reports.status
    AssignedAuthorityID uint64     // reports.assigned_authority_id
    Lat                 float64    // reports.lat
    Lng                 float64    // reports.lng
    ImageKey            *string    // reports.image_url (nullable)
    ResolutionNote      *string    // reports.resolution_note (nullable)
    ResolutionProofKey  *string    // reports.resolution_proof_image (nullable)
    CreatedAt           time.Time  // reports.created_at
    ResolvedAt          *time.Time // reports.resolved_at (nullable)
}

// Comment is a row in the `comments` table. Comments on a report are
// listed in ascending creation order.
type Comment struct {
    ID        uint64    // comments.id
    ReportID  uint64    // comments.report_id
    UserID    uint64    // comments.user_id
    Text      string    // comments.comment_text
    CreatedAt time.Time // comments.created_at
}

// Upvote links a user to a report they endorsed. The pair is unique at
// the storage layer, which makes a duplicate vote a silent no-op.
type Upvote struct {
    ReportID uint64 // upvotes.report_id
    UserID   uint64 // upvotes.user_id
}
