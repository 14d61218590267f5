// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrEmailExists signals a uniqueness conflict during
// registration, while the not-found values mark mutations that affected
// zero rows so a caller can never mistake a no-op for success.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update would duplicate an
// email already present in the account table.
var ErrEmailExists = errors.New("email already exists")

// ErrAccountNotFound is returned when an account lookup or update matches
// no row.
var ErrAccountNotFound = errors.New("account not found")

// ErrClassificationNotFound is returned when a classification id does not
// exist. Inventory writes check it before touching the inventory table.
var ErrClassificationNotFound = errors.New("classification not found")

// ErrClassificationExists is returned when a classification name is
// already taken.
var ErrClassificationExists = errors.New("classification already exists")

// ErrVehicleNotFound is returned when an inventory lookup, update, status
// change or delete affects no row.
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrReviewNotFound is returned when a review id does not exist, including
// when a dealer response targets a missing review.
var ErrReviewNotFound = errors.New("review not found")
