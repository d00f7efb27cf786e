package domain

import "time"

// CategorySection is the top level of the category taxonomy.
type CategorySection struct {
	ID               string
	Name             string
	Slug             string
	Description      string
	ShortDescription string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Category belongs to a section and classifies tasks and services.
type Category struct {
	ID               string
	SectionID        string
	Name             string
	Slug             string
	Description      string
	ShortDescription string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Region is the top level of the location taxonomy.
type Region struct {
	ID       string
	Name     string
	Slug     string
	IsActive bool
}

// City belongs to a region. Slugs are unique per region.
type City struct {
	ID       string
	RegionID string
	Name     string
	Slug     string
	IsActive bool
}
