package repository

import (
	"context"
	"database/sql"

	"github.com/floodwatch/waterlog-platform/internal/model"
)

// AuthorityRepo reads the fixed reference set of civic agencies. The table
// is seeded once and never written by the application.
type AuthorityRepo struct{ DB *sql.DB }

func NewAuthorityRepo(db *sql.DB) *AuthorityRepo { return &AuthorityRepo{DB: db} }

// ListAll returns every authority ordered by id.
func (r *AuthorityRepo) ListAll(ctx context.Context) ([]model.Authority, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM authorities ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Authority, 0, 8)
	for rows.Next() {
		var a model.Authority
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
