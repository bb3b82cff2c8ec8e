package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestUpvoteAdd_DuplicateIsNoOp(t *testing.T) {
	db, mock := newDB(t)
	repo := NewUpvoteRepo(db)

	insert := regexp.QuoteMeta("INSERT IGNORE INTO upvotes (report_id, user_id) VALUES (?,?)")
	mock.ExpectExec(insert).WithArgs(uint64(11), uint64(3)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Second identical vote hits the unique key and affects zero rows.
	mock.ExpectExec(insert).WithArgs(uint64(11), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Add(context.Background(), 11, 3))
	require.NoError(t, repo.Add(context.Background(), 11, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpvoteCount(t *testing.T) {
	db, mock := newDB(t)
	repo := NewUpvoteRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM upvotes WHERE report_id=?")).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background(), 11)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentAdd_ReadsRowBack(t *testing.T) {
	db, mock := newDB(t)
	repo := NewCommentRepo(db)
	created := time.Date(2026, 7, 14, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO comments").
		WithArgs(uint64(11), uint64(3), "Same here, car stalled").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery("SELECT .+ FROM comments WHERE id=").
		WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_id", "user_id", "comment_text", "created_at"}).
			AddRow(21, 11, 3, "Same here, car stalled", created))

	cm, err := repo.Add(context.Background(), 11, 3, "Same here, car stalled")
	require.NoError(t, err)
	require.Equal(t, uint64(21), cm.ID)
	require.Equal(t, created, cm.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentList_EmptyReportYieldsEmptySlice(t *testing.T) {
	db, mock := newDB(t)
	repo := NewCommentRepo(db)

	mock.ExpectQuery("SELECT .+ FROM comments c").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_id", "user_id", "comment_text", "full_name", "created_at"}))

	out, err := repo.ListByReport(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}
