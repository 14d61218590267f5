package model

import "time"

// Review is a customer review of a vehicle, optionally carrying a single
// dealer response. Response fields stay NULL until a privileged account
// responds; setting a response again overwrites the previous one. This
// struct corresponds to a row in the `review` table.
//
// Fields:
//
//	ID                - primary key identifier.
//	InvID             - reviewed vehicle (FK into inventory.id).
//	AccountID         - review author (FK into account.id).
//	Rating            - star rating, 1 through 5.
//	Text              - review body, at least five characters.
//	CreatedAt         - creation timestamp.
//	ResponseText      - dealer response body (nil until responded).
//	ResponseAccountID - responding account (nil until responded).
//	RespondedAt       - when the response was written (nil until responded).
type Review struct {
	ID                uint64     // review.id
	InvID             uint64     // review.inv_id
	AccountID         uint64     // review.account_id
	Rating            int        // review.rating
	Text              string     // review.review_text
	CreatedAt         time.Time  // review.created_at
	ResponseText      *string    // review.response_text (nullable)
	ResponseAccountID *uint64    // review.response_account_id (nullable)
	RespondedAt       *time.Time // review.responded_at (nullable)

	// Display names populated by the joined listing queries; not columns
	// of `review`.
	AuthorFirstName    string
	AuthorLastName     string
	ResponderFirstName *string
	ResponderLastName  *string
}

// VehicleReview is a row of the cross-vehicle "latest reviews" aggregate,
// joining each review to the make and model of the reviewed vehicle.
type VehicleReview struct {
	ReviewID  uint64
	InvID     uint64
	Rating    int
	Text      string
	CreatedAt time.Time
	Make      string
	Model     string
}
