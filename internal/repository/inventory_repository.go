package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/camdenmotors/dealerweb/internal/model"
)

// InventoryRepo encapsulates all database queries related to vehicle
// listings.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo constructs an InventoryRepo with the provided DB handle.
func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

const vehicleCols = `id, classification_id, make, model, year, description,
	image, thumbnail, price, miles, color, status, created_at, updated_at`

// Create inserts a new vehicle and reads the row back so callers receive a
// fully populated record including defaulted status and timestamps. Insert
// and read-back run in one transaction, so the returned snapshot is the
// row as it was committed.
func (r *InventoryRepo) Create(ctx context.Context, v *model.Vehicle) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const qInsert = `INSERT INTO inventory
		(classification_id, make, model, year, description, image, thumbnail, price, miles, color, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	status := v.Status
	if status == "" {
		status = model.StatusAvailable
	}
	res, err := tx.ExecContext(ctx, qInsert,
		v.ClassificationID, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	err = tx.QueryRowContext(ctx,
		"SELECT "+vehicleCols+" FROM inventory WHERE id = ?", v.ID).Scan(
		&v.ID, &v.ClassificationID, &v.Make, &v.Model, &v.Year, &v.Description,
		&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.Status,
		&v.CreatedAt, &v.UpdatedAt)
	return err
}

// GetByID fetches a vehicle by id together with its classification name.
// Returns ErrVehicleNotFound if no row is found.
func (r *InventoryRepo) GetByID(ctx context.Context, id uint64) (*model.Vehicle, error) {
	const q = `SELECT i.id, i.classification_id, i.make, i.model, i.year, i.description,
		i.image, i.thumbnail, i.price, i.miles, i.color, i.status, i.created_at, i.updated_at,
		c.name
		FROM inventory i
		JOIN classification c ON c.id = i.classification_id
		WHERE i.id = ?`
	var v model.Vehicle
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.ClassificationID, &v.Make, &v.Model, &v.Year, &v.Description,
		&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.Status,
		&v.CreatedAt, &v.UpdatedAt, &v.ClassificationName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByClassification returns all vehicles of one classification joined
// with the classification name, ordered by make and model. An empty slice
// means the classification has no vehicles yet.
func (r *InventoryRepo) ListByClassification(ctx context.Context, classificationID uint64) ([]*model.Vehicle, error) {
	const q = `SELECT i.id, i.classification_id, i.make, i.model, i.year, i.description,
		i.image, i.thumbnail, i.price, i.miles, i.color, i.status, i.created_at, i.updated_at,
		c.name
		FROM inventory i
		JOIN classification c ON c.id = i.classification_id
		WHERE i.classification_id = ?
		ORDER BY i.make, i.model`
	rows, err := r.db.QueryContext(ctx, q, classificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Vehicle
	for rows.Next() {
		v := new(model.Vehicle)
		if err := rows.Scan(
			&v.ID, &v.ClassificationID, &v.Make, &v.Model, &v.Year, &v.Description,
			&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.Status,
			&v.CreatedAt, &v.UpdatedAt, &v.ClassificationName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces every mutable column of a vehicle, including status.
// Returns ErrVehicleNotFound when no row matches the id.
func (r *InventoryRepo) Update(ctx context.Context, v *model.Vehicle) error {
	const q = `UPDATE inventory
		SET classification_id = ?, make = ?, model = ?, year = ?, description = ?,
		    image = ?, thumbnail = ?, price = ?, miles = ?, color = ?, status = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		v.ClassificationID, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.Status, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "row missing" from "no column changed": a resubmit
		// with identical values is still a successful update.
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory WHERE id = ?", v.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrVehicleNotFound
		}
	}
	return nil
}

// UpdateStatus changes only the status column. It is deliberately narrow
// so a status flip never clobbers a concurrent full-record edit's other
// fields. Returns ErrVehicleNotFound when the vehicle does not exist.
func (r *InventoryRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE inventory SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory WHERE id = ?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrVehicleNotFound
		}
	}
	return nil
}

// Delete removes a vehicle and its reviews. The row count decides the
// outcome: zero rows affected is ErrVehicleNotFound, never silent success.
func (r *InventoryRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM review WHERE inv_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM inventory WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = ErrVehicleNotFound
		return err
	}
	return nil
}
