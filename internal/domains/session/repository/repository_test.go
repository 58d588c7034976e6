package repository_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoecole/infras/otel/mocks"
	"autoecole/infras/postgres"
	"autoecole/internal/domains/session/repository"
	"autoecole/shared/failure"
	"autoecole/shared/timezone"
)

const (
	sessionID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	userID    = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func newSessionRepo(t *testing.T) (repository.Session, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func sessionColumns() []string {
	return []string{
		"id", "title", "location", "start_date", "end_date",
		"max_participants", "status", "created_at", "modified_at", "created_by", "modified_by",
	}
}

func sessionRow(maxParticipants int) *sqlmock.Rows {
	now := timezone.Now()

	return sqlmock.NewRows(sessionColumns()).
		AddRow(sessionID, "Highway driving", "Lyon", now, now.Add(2*time.Hour),
			maxParticipants, "scheduled", now, now, "admin", "admin")
}

func expectSessionLock(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectPrepare("SELECT (.+) FROM training_sessions(.+)FOR UPDATE").
		ExpectQuery().
		WithArgs(sessionID).
		WillReturnRows(rows)
}

func TestSessionRepository_Enroll(t *testing.T) {
	t.Run("takes a seat while the session row is locked", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		mock.ExpectBegin()
		expectSessionLock(mock, sessionRow(10))

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(sessionID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		mock.ExpectQuery("SELECT COUNT").
			WithArgs(sessionID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		mock.ExpectExec("INSERT INTO session_participants").
			WithArgs(sessionID, userID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectCommit()

		err := repo.Enroll(context.Background(), sessionID, userID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a duplicate enrollment", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		mock.ExpectBegin()
		expectSessionLock(mock, sessionRow(10))

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(sessionID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		mock.ExpectRollback()

		err := repo.Enroll(context.Background(), sessionID, userID)

		assert.ErrorIs(t, err, failure.ErrAlreadyEnrolled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects when the roster is full", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		mock.ExpectBegin()
		expectSessionLock(mock, sessionRow(4))

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(sessionID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		mock.ExpectQuery("SELECT COUNT").
			WithArgs(sessionID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		mock.ExpectRollback()

		err := repo.Enroll(context.Background(), sessionID, userID)

		assert.ErrorIs(t, err, failure.ErrCapacityExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown session", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		mock.ExpectBegin()
		expectSessionLock(mock, sqlmock.NewRows(sessionColumns()))
		mock.ExpectRollback()

		err := repo.Enroll(context.Background(), sessionID, userID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_Withdraw(t *testing.T) {
	t.Run("frees the seat", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		mock.ExpectBegin()
		expectSessionLock(mock, sessionRow(10))

		mock.ExpectExec("DELETE FROM session_participants").
			WithArgs(sessionID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectCommit()

		err := repo.Withdraw(context.Background(), sessionID, userID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("withdrawing an absent user is an error", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		mock.ExpectBegin()
		expectSessionLock(mock, sessionRow(10))

		mock.ExpectExec("DELETE FROM session_participants").
			WithArgs(sessionID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectRollback()

		err := repo.Withdraw(context.Background(), sessionID, userID)

		assert.ErrorIs(t, err, failure.ErrNotEnrolled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
