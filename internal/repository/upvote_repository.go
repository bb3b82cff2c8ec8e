package repository

import (
	"context"
	"database/sql"
)

// UpvoteRepo stores report endorsements. Uniqueness of the
// (report_id, user_id) pair is enforced by the table's unique key, so
// concurrent duplicate votes are safe by construction.
type UpvoteRepo struct{ DB *sql.DB }

func NewUpvoteRepo(db *sql.DB) *UpvoteRepo { return &UpvoteRepo{DB: db} }

// Add records a vote. INSERT IGNORE turns a duplicate pair into a no-op
// instead of an error, matching the idempotent endpoint contract.
func (r *UpvoteRepo) Add(ctx context.Context, reportID, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO upvotes (report_id, user_id) VALUES (?,?)",
		reportID, userID)
	return err
}

// Count returns the number of votes on a report.
func (r *UpvoteRepo) Count(ctx context.Context, reportID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM upvotes WHERE report_id=?", reportID).Scan(&n)
	return n, err
}
