// Package repository contains data access logic separated from HTTP
// handlers. This file holds the repository for vehicle classifications, the
// categories the public navigation and the inventory management screens are
// built from. Classifications are created by privileged accounts and never
// deleted.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/camdenmotors/dealerweb/internal/model"
)

// ClassificationRepo encapsulates all database queries related to
// classifications.
type ClassificationRepo struct {
	db *sql.DB
}

// NewClassificationRepo constructs a ClassificationRepo with the provided
// DB handle. This allows dependency injection of the database in tests and
// at startup.
func NewClassificationRepo(db *sql.DB) *ClassificationRepo {
	return &ClassificationRepo{db: db}
}

// Create inserts a new classification and returns its generated ID. The
// name must already have passed the alphanumeric validation rule; this
// method only enforces uniqueness.
func (r *ClassificationRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO classification (name) VALUES (?)", name)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrClassificationExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all classifications ordered by name. Every page uses this
// for the navigation bar, and the inventory forms use it for the
// classification select list.
func (r *ClassificationRepo) List(ctx context.Context) ([]*model.Classification, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM classification ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Classification
	for rows.Next() {
		c := new(model.Classification)
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a classification by id. Returns
// ErrClassificationNotFound if no row is found.
func (r *ClassificationRepo) GetByID(ctx context.Context, id uint64) (*model.Classification, error) {
	var c model.Classification
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM classification WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassificationNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Exists reports whether a classification id is present. Inventory
// validation uses it to guarantee the FK target before writing a vehicle.
func (r *ClassificationRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM classification WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
