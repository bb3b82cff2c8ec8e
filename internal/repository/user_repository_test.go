package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserCreate_HashesPassword(t *testing.T) {
	db, mock := newDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("asha", sqlmock.AnyArg(), "citizen", "Asha Verma").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), "  asha  ", "s3cret", "citizen", "Asha Verma", 4)
	require.NoError(t, err)
	require.Equal(t, uint64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	db, mock := newDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("asha", sqlmock.AnyArg(), "citizen", "Asha Verma").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'asha' for key 'users.username'"))

	_, err := repo.Create(context.Background(), "asha", "s3cret", "citizen", "Asha Verma", 4)
	require.ErrorIs(t, err, ErrUsernameExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByUsername(t *testing.T) {
	db, mock := newDB(t)
	repo := NewUserRepo(db)
	created := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM users WHERE username=").
		WithArgs("asha").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "full_name", "created_at"}).
			AddRow(7, "asha", "$2a$04$fakehash", "citizen", "Asha Verma", created))

	u, err := repo.GetByUsername(context.Background(), "asha")
	require.NoError(t, err)
	require.Equal(t, uint64(7), u.ID)
	require.Equal(t, "citizen", u.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByUsername_Missing(t *testing.T) {
	db, mock := newDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT .+ FROM users WHERE username=").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "full_name", "created_at"}))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
