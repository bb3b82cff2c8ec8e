package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/floodwatch/waterlog-platform/internal/model"
)

// ReportRepo provides persistence for citizen incident reports. Reports
// are the aggregation root for upvotes and comments; they are created by
// citizens, resolved by authorities and never deleted.
type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// ReportFilter narrows List results. Zero values mean "no filter".
type ReportFilter struct {
	AuthorityID uint64
	Status      string
}

// ReportDetail is a report joined with its reporter and authority names,
// as returned by the listing endpoint.
type ReportDetail struct {
	ID                  uint64     `json:"id"`
	ReporterID          uint64     `json:"reporter_id"`
	ReporterName        string     `json:"reporter_name"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Severity            string     `json:"severity"`
	Status              string     `json:"status"`
	AssignedAuthorityID uint64     `json:"assigned_authority_id"`
	AuthorityName       string     `json:"authority_name"`
	Lat                 float64    `json:"lat"`
	Lng                 float64    `json:"lng"`
	ImageURL            *string    `json:"image_url"`
	ResolutionNote      *string    `json:"resolution_note"`
	ResolutionProofURL  *string    `json:"resolution_proof_image"`
	CreatedAt           time.Time  `json:"created_at"`
	ResolvedAt          *time.Time `json:"resolved_at"`
}

const reportColumns = "id,reporter_id,title,description,severity,status,assigned_authority_id,lat,lng,image_url,resolution_note,resolution_proof_image,created_at,resolved_at"

// Create inserts a new report with status Open and populates the record's
// generated ID and timestamps by reading the row back.
func (r *ReportRepo) Create(ctx context.Context, rec *model.Report) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reports (reporter_id, title, description, severity, status, assigned_authority_id, lat, lng, image_url) VALUES (?,?,?,?,?,?,?,?,?)",
		rec.ReporterID, rec.Title, rec.Description, rec.Severity, model.StatusOpen,
		rec.AssignedAuthorityID, rec.Lat, rec.Lng, rec.ImageKey)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id=?", rec.ID).Scan(
		&rec.ID, &rec.ReporterID, &rec.Title, &rec.Description, &rec.Severity,
		&rec.Status, &rec.AssignedAuthorityID, &rec.Lat, &rec.Lng, &rec.ImageKey,
		&rec.ResolutionNote, &rec.ResolutionProofKey, &rec.CreatedAt, &rec.ResolvedAt)
}

// GetByID fetches a single report.
func (r *ReportRepo) GetByID(ctx context.Context, id uint64) (model.Report, error) {
	var rec model.Report
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id=? LIMIT 1", id).Scan(
		&rec.ID, &rec.ReporterID, &rec.Title, &rec.Description, &rec.Severity,
		&rec.Status, &rec.AssignedAuthorityID, &rec.Lat, &rec.Lng, &rec.ImageKey,
		&rec.ResolutionNote, &rec.ResolutionProofKey, &rec.CreatedAt, &rec.ResolvedAt)
	if err == sql.ErrNoRows {
		return rec, ErrNotFound
	}
	return rec, err
}

// List returns reports joined with reporter and authority names, most
// recent first. Filters apply conjunctively when set.
func (r *ReportRepo) List(ctx context.Context, f ReportFilter) ([]ReportDetail, error) {
	query := `SELECT r.id, r.reporter_id, u.full_name, r.title, r.description, r.severity, r.status,
		r.assigned_authority_id, a.name, r.lat, r.lng, r.image_url,
		r.resolution_note, r.resolution_proof_image, r.created_at, r.resolved_at
		FROM reports r
		JOIN users u ON r.reporter_id = u.id
		JOIN authorities a ON r.assigned_authority_id = a.id`
	args := []interface{}{}
	where := ""
	if f.AuthorityID != 0 {
		where = " WHERE r.assigned_authority_id = ?"
		args = append(args, f.AuthorityID)
	}
	if f.Status != "" {
		if where == "" {
			where = " WHERE r.status = ?"
		} else {
			where += " AND r.status = ?"
		}
		args = append(args, f.Status)
	}
	query += where + " ORDER BY r.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReportDetail, 0, 16)
	for rows.Next() {
		var d ReportDetail
		if err := rows.Scan(&d.ID, &d.ReporterID, &d.ReporterName, &d.Title, &d.Description,
			&d.Severity, &d.Status, &d.AssignedAuthorityID, &d.AuthorityName, &d.Lat, &d.Lng,
			&d.ImageURL, &d.ResolutionNote, &d.ResolutionProofURL, &d.CreatedAt, &d.ResolvedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Resolve performs the one-way Open/In Progress -> Resolved transition.
// The UPDATE is guarded on status so two racing resolve calls cannot both
// succeed; the loser (or a repeat call) gets ErrAlreadyResolved. A missing
// report yields ErrNotFound.
func (r *ReportRepo) Resolve(ctx context.Context, id uint64, note string, proofKey *string) (model.Report, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reports SET status=?, resolved_at=NOW(), resolution_note=?, resolution_proof_image=? WHERE id=? AND status <> ?",
		model.StatusResolved, note, proofKey, id, model.StatusResolved)
	if err != nil {
		return model.Report{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Report{}, err
	}
	if n == 0 {
		// Either the report does not exist or it was already resolved.
		rec, err := r.GetByID(ctx, id)
		if err != nil {
			return model.Report{}, err
		}
		if rec.Status == model.StatusResolved {
			return rec, ErrAlreadyResolved
		}
		return model.Report{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
