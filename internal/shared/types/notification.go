package types

import "time"

// Notification is a posted message shown in the shade and peeked on the lock screen
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
