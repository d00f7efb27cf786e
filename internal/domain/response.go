package domain

import "time"

// ResponseStatus represents the status of a candidate's response.
type ResponseStatus string

const (
	ResponseStatusPending   ResponseStatus = "pending"
	ResponseStatusAccepted  ResponseStatus = "accepted"
	ResponseStatusRejected  ResponseStatus = "rejected"
	ResponseStatusWithdrawn ResponseStatus = "withdrawn"
)

// IsValid checks if the status is one of the allowed values.
func (s ResponseStatus) IsValid() bool {
	switch s {
	case ResponseStatusPending, ResponseStatusAccepted,
		ResponseStatusRejected, ResponseStatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsDecision reports whether the status is one the task author may set.
// The author only ever accepts or rejects; pending is the initial state
// and withdrawn belongs to the candidate.
func (s ResponseStatus) IsDecision() bool {
	return s == ResponseStatusAccepted || s == ResponseStatusRejected
}

// TaskResponse is a candidate's application to a task. At most one
// response exists per (task, candidate) pair, and at most one response
// per task holds the accepted status.
type TaskResponse struct {
	ID          string
	TaskID      string
	CandidateID string
	Message     string
	Status      ResponseStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsFrom checks if the response belongs to the given candidate.
func (r *TaskResponse) IsFrom(userID string) bool {
	return r.CandidateID == userID
}
