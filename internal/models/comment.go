package models

import "time"

// Comment is the single persisted entity of the comment board.
// The same shape is used by every store backend; ID is backend-assigned
// (epoch milliseconds for the file and memory stores, an ObjectID hex for
// MongoDB, a UUID for PostgreSQL) and is opaque to callers.
type Comment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Text  string `json:"text"`

	// Date is the human-readable creation time shown next to the comment.
	Date string `json:"date"`

	// OwnerID is the per-client random token that claims authorship.
	// Comments submitted without one can be deleted by anyone.
	OwnerID  string `json:"ownerId,omitempty"`
	Approved bool   `json:"approved"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// DisplayDate formats a creation instant the way the board renders it.
func DisplayDate(t time.Time) string {
	return t.Format("January 2, 2006, 15:04")
}
