package domain

import "time"

// User is a registered account on the marketplace.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Bio          string
	IsStaff      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identifies the authenticated user performing an operation.
// Lifecycle operations take an explicit Actor instead of reading any
// ambient request state.
type Actor struct {
	ID      string
	IsStaff bool
}

// Anonymous is the zero actor used for unauthenticated requests.
var Anonymous = Actor{}

// IsAnonymous reports whether the actor is unauthenticated.
func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}
