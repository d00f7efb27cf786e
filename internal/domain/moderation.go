package domain

import "time"

// UserWarning is an append-only disciplinary note issued by staff.
type UserWarning struct {
	ID         string
	UserID     string
	IssuedByID string
	Reason     string
	CreatedAt  time.Time
}

// UserBan blocks a user from the marketplace, either permanently or
// until a given time. A ban can be revoked by staff.
type UserBan struct {
	ID          string
	UserID      string
	IssuedByID  string
	Reason      string
	IsPermanent bool
	BannedUntil *time.Time
	IsRevoked   bool
	CreatedAt   time.Time
}

// IsActiveAt reports whether the ban is in force at the given time.
func (b *UserBan) IsActiveAt(now time.Time) bool {
	if b.IsRevoked {
		return false
	}
	if b.IsPermanent {
		return true
	}
	return b.BannedUntil != nil && now.Before(*b.BannedUntil)
}

// ComplaintStatus tracks the review state of a user complaint.
type ComplaintStatus string

const (
	ComplaintStatusOpen      ComplaintStatus = "open"
	ComplaintStatusReviewed  ComplaintStatus = "reviewed"
	ComplaintStatusDismissed ComplaintStatus = "dismissed"
)

// IsValid checks if the complaint status is allowed.
func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusReviewed, ComplaintStatusDismissed:
		return true
	default:
		return false
	}
}

// UserComplaint is filed by one user against another and reviewed by staff.
type UserComplaint struct {
	ID             string
	ComplainantID  string
	AccusedID      string
	Reason         string
	Status         ComplaintStatus
	ResolutionNote string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
