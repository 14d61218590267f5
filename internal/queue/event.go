// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewSubmittedEvent is published when a visitor posts a vehicle review.
// It carries enough information for downstream consumers to log or notify
// staff without querying the primary database.
type ReviewSubmittedEvent struct {
	ReviewID    uint64 `json:"review_id"`
	InvID       uint64 `json:"inv_id"`
	AccountID   uint64 `json:"account_id"`
	Rating      int    `json:"rating"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	SubmittedAt string `json:"submitted_at"`
}
