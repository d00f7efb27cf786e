package domain

import "time"

// Message is a single message within a task response thread. Messages are
// append-only; the recipient flips the read flag.
type Message struct {
	ID         string
	ResponseID string
	SenderID   string
	Content    string
	IsRead     bool
	CreatedAt  time.Time
}

// ServiceMessage is a direct message between a service author and a
// potential customer. Create-once, read-flag mutated by the recipient.
type ServiceMessage struct {
	ID          string
	ServiceID   string
	SenderID    string
	RecipientID string
	Content     string
	IsRead      bool
	CreatedAt   time.Time
}
