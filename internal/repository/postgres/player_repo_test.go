package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/domain"
	"rosterscan/internal/repository/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPlayerRepo_ApplyBatch_InsertUpsertsOnIdentityConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPlayerRepo(db)

	rosterID := uuid.New()
	storedID := uuid.New()
	storedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	inserted := []domain.Player{{
		ID: uuid.New(), RosterID: rosterID, FirstName: "John", LastName: "Smith", Position: "QB",
		Jersey: 12, Overall: 85, Attributes: domain.Attributes{"OVR": 85},
	}}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (roster_id, LOWER(first_name), LOWER(last_name), position) DO UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(storedID, storedAt))
	mock.ExpectCommit()

	require.NoError(t, repo.ApplyBatch(context.Background(), inserted, nil))

	assert.Equal(t, storedID, inserted[0].ID, "row id of the surviving player is reported")
	assert.Equal(t, storedAt, inserted[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayerRepo_ApplyBatch_UpdateMissingRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPlayerRepo(db)

	updated := []domain.Player{{ID: uuid.New(), RosterID: uuid.New(), LastName: "Ray", Position: "WR", Overall: 80}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE players SET")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ApplyBatch(context.Background(), nil, updated)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayerRepo_ApplyBatch_InsertErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewPlayerRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO players")).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.ApplyBatch(context.Background(), []domain.Player{{ID: uuid.New(), RosterID: uuid.New()}}, nil)

	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
