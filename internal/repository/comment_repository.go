package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/floodwatch/waterlog-platform/internal/model"
)

// CommentRepo stores discussion threads under reports.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// CommentDetail is a comment joined with the commenter's display name.
type CommentDetail struct {
	ID        uint64    `json:"id"`
	ReportID  uint64    `json:"report_id"`
	UserID    uint64    `json:"user_id"`
	Text      string    `json:"comment_text"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Add inserts a comment and reads the stored row back so the caller gets
// the generated ID and timestamp.
func (r *CommentRepo) Add(ctx context.Context, reportID, userID uint64, text string) (model.Comment, error) {
	var cm model.Comment
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (report_id, user_id, comment_text) VALUES (?,?,?)",
		reportID, userID, text)
	if err != nil {
		return cm, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return cm, err
	}
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,report_id,user_id,comment_text,created_at FROM comments WHERE id=?",
		uint64(id)).Scan(&cm.ID, &cm.ReportID, &cm.UserID, &cm.Text, &cm.CreatedAt)
	return cm, err
}

// ListByReport returns a report's comments in ascending creation order.
// A report with no comments yields an empty slice, not an error.
func (r *CommentRepo) ListByReport(ctx context.Context, reportID uint64) ([]CommentDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.report_id, c.user_id, c.comment_text, u.full_name, c.created_at
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.report_id = ?
		ORDER BY c.created_at ASC`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CommentDetail, 0, 8)
	for rows.Next() {
		var d CommentDetail
		if err := rows.Scan(&d.ID, &d.ReportID, &d.UserID, &d.Text, &d.FullName, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
