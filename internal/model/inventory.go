package model

import "time"

// Vehicle status values constrained by the inventory status enum. Any
// status may transition to any other; concurrent updates apply in commit
// order (last write wins at the row level).
const (
	StatusAvailable = "Available"
	StatusPending   = "Pending"
	StatusSold      = "Sold"
)

// ValidStatus reports whether s is one of the allowed inventory statuses.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusPending || s == StatusSold
}

// Vehicle represents a vehicle listing in the `inventory` table. Every
// vehicle references an existing classification. Year, price and miles are
// range-checked by the validation middleware before any row is written.
//
// Fields:
//
//	ID               - primary key identifier.
//	ClassificationID - owning classification (FK into classification.id).
//	Make             - manufacturer name.
//	Model            - model name.
//	Year             - model year, 1900 through 2099.
//	Description      - free-text description.
//	Image            - path of the full-size image.
//	Thumbnail        - path of the thumbnail image.
//	Price            - asking price in dollars, never negative.
//	Miles            - odometer reading, never negative.
//	Color            - exterior color.
//	Status           - Available, Pending or Sold.
//	CreatedAt        - creation timestamp.
//	UpdatedAt        - last update timestamp.
type Vehicle struct {
	ID               uint64    // inventory.id
	ClassificationID uint64    // inventory.classification_id
	Make             string    // inventory.make
	Model            string    // inventory.model
	Year             int       // inventory.year
	Description      string    // inventory.description
	Image            string    // inventory.image
	Thumbnail        string    // inventory.thumbnail
	Price            float64   // inventory.price
	Miles            int       // inventory.miles
	Color            string    // inventory.color
	Status           string    // inventory.status
	CreatedAt        time.Time // inventory.created_at
	UpdatedAt        time.Time // inventory.updated_at

	// ClassificationName is populated by queries that join the
	// classification table; it is not a column of `inventory`.
	ClassificationName string
}
