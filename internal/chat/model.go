// Package chat implements the virtual-therapist feature: it forwards a
// user's prompt, wrapped in a fixed therapist persona, to an external
// completion API and returns the reply verbatim. Both sides of every
// exchange are persisted as the user's message history.
package chat

import "time"

// Texter values distinguish who produced a message.
const (
	TexterUser      = "user"
	TexterTherapist = "therapist"
)

// Message is one turn in a user's therapist conversation.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Body      string    `json:"message"`
	Texter    string    `json:"texter"`
	CreatedAt time.Time `json:"createdAt"`
}
