package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/camdenmotors/dealerweb/internal/model"
)

// ReviewRepo encapsulates all database queries related to vehicle reviews
// and dealer responses.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a review and returns its generated ID. Rating and text
// bounds are enforced by the validation middleware before this runs; the
// FK constraints catch dangling vehicle or account ids.
func (r *ReviewRepo) Create(ctx context.Context, invID, accountID uint64, rating int, text string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO review (inv_id, account_id, rating, review_text) VALUES (?,?,?,?)",
		invID, accountID, rating, text)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByVehicle returns all reviews of one vehicle joined with the
// author's display name and, when a response exists, the responder's
// display name. Ordering by creation time descending is part of the page
// contract: newest review first. A vehicle without reviews yields an
// empty slice, not an error.
func (r *ReviewRepo) ListByVehicle(ctx context.Context, invID uint64) ([]*model.Review, error) {
	const q = `SELECT r.id, r.inv_id, r.account_id, r.rating, r.review_text, r.created_at,
		r.response_text, r.response_account_id, r.responded_at,
		a.first_name, a.last_name,
		resp.first_name, resp.last_name
		FROM review r
		JOIN account a ON a.id = r.account_id
		LEFT JOIN account resp ON resp.id = r.response_account_id
		WHERE r.inv_id = ?
		ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, invID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Review{}
	for rows.Next() {
		rv := new(model.Review)
		if err := rows.Scan(
			&rv.ID, &rv.InvID, &rv.AccountID, &rv.Rating, &rv.Text, &rv.CreatedAt,
			&rv.ResponseText, &rv.ResponseAccountID, &rv.RespondedAt,
			&rv.AuthorFirstName, &rv.AuthorLastName,
			&rv.ResponderFirstName, &rv.ResponderLastName); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetResponse writes the dealer response fields of a review. It is an
// UPDATE, not an insert: invoking it again overwrites the previous
// response text, responder and timestamp. The privileged-role gate on the
// add-response route is the only guard against arbitrary overwrite.
// Returns ErrReviewNotFound when the review id does not exist.
func (r *ReviewRepo) SetResponse(ctx context.Context, reviewID uint64, text string, responderID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE review
		 SET response_text = ?, response_account_id = ?, responded_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		text, responderID, reviewID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM review WHERE id = ?", reviewID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrReviewNotFound
		}
	}
	return nil
}

// GetByID fetches a single review. Handlers use it to find the vehicle to
// redirect back to after a response is posted.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	var rv model.Review
	err := r.db.QueryRowContext(ctx,
		`SELECT id, inv_id, account_id, rating, review_text, created_at,
		 response_text, response_account_id, responded_at
		 FROM review WHERE id = ?`, id).Scan(
		&rv.ID, &rv.InvID, &rv.AccountID, &rv.Rating, &rv.Text, &rv.CreatedAt,
		&rv.ResponseText, &rv.ResponseAccountID, &rv.RespondedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// Latest returns the newest reviews across all vehicles joined to make and
// model, bounded by limit. A non-positive limit falls back to 5. An empty
// system returns an empty slice.
func (r *ReviewRepo) Latest(ctx context.Context, limit int) ([]*model.VehicleReview, error) {
	if limit <= 0 {
		limit = 5
	}
	const q = `SELECT r.id, r.inv_id, r.rating, r.review_text, r.created_at,
		i.make, i.model
		FROM review r
		JOIN inventory i ON i.id = r.inv_id
		ORDER BY r.created_at DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.VehicleReview{}
	for rows.Next() {
		vr := new(model.VehicleReview)
		if err := rows.Scan(&vr.ReviewID, &vr.InvID, &vr.Rating, &vr.Text, &vr.CreatedAt,
			&vr.Make, &vr.Model); err != nil {
			return nil, err
		}
		out = append(out, vr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Featured returns the vehicle with the most recent review, used on the
// home page. Returns ErrVehicleNotFound when no review exists yet.
func (r *ReviewRepo) Featured(ctx context.Context) (*model.Vehicle, error) {
	const q = `SELECT i.id, i.make, i.model
		FROM inventory i
		JOIN review r ON r.inv_id = i.id
		ORDER BY r.created_at DESC
		LIMIT 1`
	var v model.Vehicle
	err := r.db.QueryRowContext(ctx, q).Scan(&v.ID, &v.Make, &v.Model)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}
