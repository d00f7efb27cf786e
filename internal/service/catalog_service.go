package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/repository"
)

// CatalogService handles the service-offering side of the marketplace.
type CatalogService struct {
	serviceRepo  *repository.ServiceRepository
	taxonomyRepo *repository.TaxonomyRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	serviceRepo *repository.ServiceRepository,
	taxonomyRepo *repository.TaxonomyRepository,
) *CatalogService {
	return &CatalogService{
		serviceRepo:  serviceRepo,
		taxonomyRepo: taxonomyRepo,
	}
}

// ServiceInput carries the author-editable fields of a service offering.
type ServiceInput struct {
	Title         string
	Description   string
	CategoryID    string
	LocationType  domain.LocationType
	CityID        *string
	Price         *decimal.Decimal
	PaymentPeriod domain.PaymentPeriod
}

func (s *CatalogService) checkServiceInput(ctx context.Context, in ServiceInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if !in.LocationType.IsValid() {
		return fmt.Errorf("%w: unknown location type %q", domain.ErrValidation, in.LocationType)
	}
	if !in.PaymentPeriod.IsValid() {
		return fmt.Errorf("%w: unknown payment period %q", domain.ErrValidation, in.PaymentPeriod)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}

	if _, err := s.taxonomyRepo.GetCategoryByID(ctx, in.CategoryID); err != nil {
		return err
	}
	if in.CityID != nil {
		if _, err := s.taxonomyRepo.GetCityByID(ctx, *in.CityID); err != nil {
			return err
		}
	}
	return nil
}

// CreateService posts a new offering. It starts active and unmoderated.
func (s *CatalogService) CreateService(ctx context.Context, actor domain.Actor, in ServiceInput) (*domain.Service, error) {
	if err := s.checkServiceInput(ctx, in); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		Title:         in.Title,
		Description:   in.Description,
		AuthorID:      actor.ID,
		CategoryID:    in.CategoryID,
		LocationType:  in.LocationType,
		CityID:        in.CityID,
		Price:         in.Price,
		PaymentPeriod: in.PaymentPeriod,
		IsActive:      true,
		IsModerated:   false,
	}
	if err := svc.ValidateLocation(); err != nil {
		return nil, err
	}

	svcSlug, err := uniqueSlug(ctx, in.Title, s.serviceRepo.SlugExists)
	if err != nil {
		return nil, err
	}
	svc.Slug = svcSlug

	svc, err = s.serviceRepo.Create(ctx, svc)
	if err != nil {
		return nil, err
	}

	slog.Info("service created",
		"service_id", svc.ID,
		"author_id", actor.ID,
		"slug", svc.Slug,
	)

	return svc, nil
}

// EditService updates an offering. Any edit resets the moderation flag.
func (s *CatalogService) EditService(ctx context.Context, actor domain.Actor, serviceID string, in ServiceInput) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsAuthoredBy(actor.ID) {
		return nil, fmt.Errorf("%w: user %s is not the author of service %s", domain.ErrPermissionDenied, actor.ID, serviceID)
	}
	if err := s.checkServiceInput(ctx, in); err != nil {
		return nil, err
	}

	svc.Title = in.Title
	svc.Description = in.Description
	svc.CategoryID = in.CategoryID
	svc.LocationType = in.LocationType
	svc.CityID = in.CityID
	svc.Price = in.Price
	svc.PaymentPeriod = in.PaymentPeriod
	svc.IsModerated = false

	if err := svc.ValidateLocation(); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}

	slog.Info("service edited",
		"service_id", svc.ID,
		"author_id", actor.ID,
	)

	return svc, nil
}

// GetService retrieves a service by slug. Hidden services are visible to
// the author and staff only; public views bump the counter.
func (s *CatalogService) GetService(ctx context.Context, actor domain.Actor, serviceSlug string) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetBySlug(ctx, serviceSlug)
	if err != nil {
		return nil, err
	}

	if !svc.IsListed() {
		if !svc.IsAuthoredBy(actor.ID) && !actor.IsStaff {
			return nil, fmt.Errorf("%w: service %s is not visible", domain.ErrServiceNotFound, svc.ID)
		}
		return svc, nil
	}

	if !svc.IsAuthoredBy(actor.ID) {
		if err := s.serviceRepo.IncrementViews(ctx, svc.ID); err != nil {
			slog.Error("failed to bump service views", "service_id", svc.ID, "error", err)
		}
	}

	return svc, nil
}

// ListServices retrieves the public service listing.
func (s *CatalogService) ListServices(ctx context.Context, filters repository.ServiceListFilters) ([]*domain.Service, int, error) {
	return s.serviceRepo.List(ctx, filters)
}
