// Package journal implements journal entries: a dated free-text record with
// a numeric mood score, owned by exactly one user. Entries are created and
// deleted but never edited.
package journal

import "time"

// Journal is a single journal entry.
type Journal struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Mood    int    `json:"mood"`
	Content string `json:"content"`
	// Date is the caller-supplied display date. The client owns its
	// formatting; the server stores it verbatim.
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateJournalRequest holds the data submitted when creating an entry.
// The acting user is identified by email, matching the web client's payload.
type CreateJournalRequest struct {
	Mood      int    `json:"mood"`
	Content   string `json:"content"`
	Date      string `json:"date"`
	UserEmail string `json:"userEmail"`
}
