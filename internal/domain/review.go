package domain

import "time"

// Review is a post-completion rating exchanged between the task author
// and the executor. Each party may leave at most one review per task.
type Review struct {
	ID             string
	TaskID         string
	ReviewerID     string
	ReviewedUserID string
	Rating         int
	Comment        string
	CreatedAt      time.Time
}

// ValidRating reports whether the rating is within the 1..5 scale.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
