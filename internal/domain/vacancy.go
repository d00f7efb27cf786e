package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Experience is the required work experience for a vacancy.
type Experience string

const (
	ExperienceNone         Experience = "no_experience"
	ExperienceLessThanYear Experience = "less_than_year"
	ExperienceMoreThanYear Experience = "more_than_year"
)

// IsValid checks if the experience value is allowed.
func (e Experience) IsValid() bool {
	switch e {
	case ExperienceNone, ExperienceLessThanYear, ExperienceMoreThanYear:
		return true
	default:
		return false
	}
}

// EmploymentType is the employment arrangement for a vacancy.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentRemote   EmploymentType = "remote"
)

// IsValid checks if the employment type is allowed.
func (e EmploymentType) IsValid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentRemote:
		return true
	default:
		return false
	}
}

// WorkNature describes the physical nature of the work.
type WorkNature string

const (
	WorkNatureOnSite    WorkNature = "on_site"
	WorkNatureOffice    WorkNature = "office"
	WorkNatureTraveling WorkNature = "traveling"
)

// IsValid checks if the work nature value is allowed.
func (w WorkNature) IsValid() bool {
	switch w {
	case WorkNatureOnSite, WorkNatureOffice, WorkNatureTraveling:
		return true
	default:
		return false
	}
}

// Specialty groups vacancies by profession.
type Specialty struct {
	ID          string
	Name        string
	Slug        string
	Description string
}

// Vacancy is a job opening posted by an employer.
type Vacancy struct {
	ID                string
	Title             string
	Slug              string
	Description       string
	AuthorID          string
	SpecialtyID       string
	Experience        Experience
	EmploymentType    EmploymentType
	WorkNature        WorkNature
	OtherConditions   string
	Salary            decimal.Decimal
	Location          string
	CityID            *string
	IsActive          bool
	IsModerated       bool
	ModerationComment string
	Views             int
	ResponsesCount    int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAuthoredBy checks if the vacancy was posted by the given user.
func (v *Vacancy) IsAuthoredBy(userID string) bool {
	return v.AuthorID == userID
}

// IsListed reports whether the vacancy appears in public listings.
func (v *Vacancy) IsListed() bool {
	return v.IsActive && v.IsModerated
}

// VacancyResponse is a candidate's application to a vacancy.
// At most one response exists per (vacancy, candidate) pair.
type VacancyResponse struct {
	ID          string
	VacancyID   string
	CandidateID string
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}
