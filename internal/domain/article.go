package domain

import "time"

// Article is an editorial page shown in the public blog section.
type Article struct {
	ID          string
	Title       string
	Slug        string
	Body        string
	AuthorID    string
	IsPublished bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
