package model

import "time"

// Classification groups inventory vehicles into categories such as SUV or
// Sedan. Names are unique and restricted to letters and digits. This
// struct corresponds to a row in the `classification` table.
//
// Fields:
//
//	ID        - primary key identifier.
//	Name      - unique alphanumeric classification name.
//	CreatedAt - timestamp when the classification was created.
type Classification struct {
	ID        uint64    // classification.id
	Name      string    // classification.name
	CreatedAt time.Time // classification.created_at
}
