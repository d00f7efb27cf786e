package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is an offering posted by a performer. Services have no lifecycle
// status; visibility is controlled by the active and moderation flags.
type Service struct {
	ID                string
	Title             string
	Slug              string
	Description       string
	AuthorID          string
	CategoryID        string
	LocationType      LocationType
	CityID            *string
	Price             *decimal.Decimal
	PaymentPeriod     PaymentPeriod
	IsActive          bool
	IsModerated       bool
	ModerationComment string
	Views             int
	OrdersCount       int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAuthoredBy checks if the service was posted by the given user.
func (s *Service) IsAuthoredBy(userID string) bool {
	return s.AuthorID == userID
}

// IsListed reports whether the service appears in public listings.
func (s *Service) IsListed() bool {
	return s.IsActive && s.IsModerated
}

// ValidateLocation enforces the city/location invariant for services.
func (s *Service) ValidateLocation() error {
	if s.LocationType == LocationTypeRemote {
		if s.CityID != nil {
			return ErrCityForbidden
		}
		return nil
	}
	if s.CityID == nil {
		return ErrCityRequired
	}
	return nil
}
