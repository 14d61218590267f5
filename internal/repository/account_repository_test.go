package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*AccountRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAccountRepo(db), mock
}

func TestAccountCreateNormalizesEmail(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO account").
		WithArgs("Jane", "Doe", "jane@example.com", "hash", "Client").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), "Jane", "Doe", "  JANE@Example.COM ", "hash")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO account").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jane@example.com'"))

	_, err := repo.Create(context.Background(), "Jane", "Doe", "jane@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAccountGetByEmailNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM account WHERE email=").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountGetByEmail(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(3, "Jane", "Doe", "jane@example.com", "hash", "Employee", now, now)
	mock.ExpectQuery("SELECT (.+) FROM account WHERE email=").
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	acct, err := repo.GetByEmail(context.Background(), "Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), acct.ID)
	assert.Equal(t, "Employee", acct.Role)
}

func TestEmailTakenByOther(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM account WHERE email=\? AND id<>\?`).
		WithArgs("jane@example.com", uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	taken, err := repo.EmailTakenByOther(context.Background(), "jane@example.com", 3)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateProfileSameValuesIsSuccess(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE account SET first_name=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM account WHERE id=\?`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	err := repo.UpdateProfile(context.Background(), 3, "Jane", "Doe", "jane@example.com")
	assert.NoError(t, err)
}

func TestUpdateProfileMissingAccount(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE account SET first_name=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM account WHERE id=\?`).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	err := repo.UpdateProfile(context.Background(), 99, "Jane", "Doe", "jane@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdatePasswordMissingAccount(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE account SET password_hash=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 99, "hash")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
