package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/camdenmotors/dealerweb/internal/model"
)

// AccountRepo encapsulates all database queries related to accounts. It
// depends on a sql.DB connection pool injected at startup.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = "id, first_name, last_name, email, password_hash, role, created_at, updated_at"

// Create inserts an account with an already-hashed password and returns
// its ID. Emails are normalized to lower case before insert so the unique
// index works case-insensitively. New accounts always start as Client;
// role promotion is a manual operation outside this application.
func (r *AccountRepo) Create(ctx context.Context, firstName, lastName, email, passwordHash string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO account (first_name, last_name, email, password_hash, role) VALUES (?,?,?,?,?)",
		firstName, lastName, email, passwordHash, model.RoleClient)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email. Returns
// ErrAccountNotFound when no row matches; login handlers map that to the
// same generic message as a wrong password.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM account WHERE email=? LIMIT 1",
		email).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrAccountNotFound
	}
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM account WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrAccountNotFound
	}
	return a, err
}

// EmailExists reports whether any account uses the given email. The
// registration validator calls this before hashing so duplicate emails
// short-circuit the whole pipeline.
func (r *AccountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM account WHERE email=?", email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EmailTakenByOther reports whether a different account than id already
// uses the email. Profile updates use it so keeping the current email
// never falsely rejects.
func (r *AccountRepo) EmailTakenByOther(ctx context.Context, email string, id uint64) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM account WHERE email=? AND id<>?", email, id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateProfile changes the name and email fields of an account. It
// returns ErrAccountNotFound when no row is affected and ErrEmailExists
// when the new email collides with another account.
func (r *AccountRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE account SET first_name=?, last_name=?, email=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		firstName, lastName, email, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	// MySQL reports zero affected rows for a no-change update as well; a
	// same-value resubmit is still a success, so check existence before
	// declaring the account missing.
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM account WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrAccountNotFound
		}
	}
	return nil
}

// UpdatePassword replaces the stored password hash. Returns
// ErrAccountNotFound when the account does not exist.
func (r *AccountRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE account SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		passwordHash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// isDuplicate detects a MySQL duplicate-key violation (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
