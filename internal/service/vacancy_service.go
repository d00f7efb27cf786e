package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/repository"
)

// VacancyService handles job openings and applications.
type VacancyService struct {
	vacancyRepo  *repository.VacancyRepository
	taxonomyRepo *repository.TaxonomyRepository
}

// NewVacancyService creates a new VacancyService.
func NewVacancyService(
	vacancyRepo *repository.VacancyRepository,
	taxonomyRepo *repository.TaxonomyRepository,
) *VacancyService {
	return &VacancyService{
		vacancyRepo:  vacancyRepo,
		taxonomyRepo: taxonomyRepo,
	}
}

// VacancyInput carries the employer-editable fields of a vacancy.
type VacancyInput struct {
	Title           string
	Description     string
	SpecialtyID     string
	Experience      domain.Experience
	EmploymentType  domain.EmploymentType
	WorkNature      domain.WorkNature
	OtherConditions string
	Salary          decimal.Decimal
	Location        string
	CityID          *string
}

func (s *VacancyService) checkVacancyInput(ctx context.Context, in VacancyInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if !in.Experience.IsValid() {
		return fmt.Errorf("%w: unknown experience %q", domain.ErrValidation, in.Experience)
	}
	if !in.EmploymentType.IsValid() {
		return fmt.Errorf("%w: unknown employment type %q", domain.ErrValidation, in.EmploymentType)
	}
	if !in.WorkNature.IsValid() {
		return fmt.Errorf("%w: unknown work nature %q", domain.ErrValidation, in.WorkNature)
	}
	if in.Salary.IsNegative() {
		return fmt.Errorf("%w: salary cannot be negative", domain.ErrValidation)
	}

	if _, err := s.vacancyRepo.GetSpecialtyByID(ctx, in.SpecialtyID); err != nil {
		return err
	}
	if in.CityID != nil {
		if _, err := s.taxonomyRepo.GetCityByID(ctx, *in.CityID); err != nil {
			return err
		}
	}
	return nil
}

// CreateVacancy posts a new vacancy. It starts active and unmoderated.
func (s *VacancyService) CreateVacancy(ctx context.Context, actor domain.Actor, in VacancyInput) (*domain.Vacancy, error) {
	if err := s.checkVacancyInput(ctx, in); err != nil {
		return nil, err
	}

	vac := &domain.Vacancy{
		Title:           in.Title,
		Description:     in.Description,
		AuthorID:        actor.ID,
		SpecialtyID:     in.SpecialtyID,
		Experience:      in.Experience,
		EmploymentType:  in.EmploymentType,
		WorkNature:      in.WorkNature,
		OtherConditions: in.OtherConditions,
		Salary:          in.Salary,
		Location:        in.Location,
		CityID:          in.CityID,
		IsActive:        true,
		IsModerated:     false,
	}

	vacSlug, err := uniqueSlug(ctx, in.Title, s.vacancyRepo.SlugExists)
	if err != nil {
		return nil, err
	}
	vac.Slug = vacSlug

	vac, err = s.vacancyRepo.Create(ctx, vac)
	if err != nil {
		return nil, err
	}

	slog.Info("vacancy created",
		"vacancy_id", vac.ID,
		"author_id", actor.ID,
		"slug", vac.Slug,
	)

	return vac, nil
}

// EditVacancy updates a vacancy. Any edit resets the moderation flag.
func (s *VacancyService) EditVacancy(ctx context.Context, actor domain.Actor, vacancyID string, in VacancyInput) (*domain.Vacancy, error) {
	vac, err := s.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if !vac.IsAuthoredBy(actor.ID) {
		return nil, fmt.Errorf("%w: user %s is not the author of vacancy %s", domain.ErrPermissionDenied, actor.ID, vacancyID)
	}
	if err := s.checkVacancyInput(ctx, in); err != nil {
		return nil, err
	}

	vac.Title = in.Title
	vac.Description = in.Description
	vac.SpecialtyID = in.SpecialtyID
	vac.Experience = in.Experience
	vac.EmploymentType = in.EmploymentType
	vac.WorkNature = in.WorkNature
	vac.OtherConditions = in.OtherConditions
	vac.Salary = in.Salary
	vac.Location = in.Location
	vac.CityID = in.CityID
	vac.IsModerated = false

	if err := s.vacancyRepo.Update(ctx, vac); err != nil {
		return nil, err
	}

	slog.Info("vacancy edited",
		"vacancy_id", vac.ID,
		"author_id", actor.ID,
	)

	return vac, nil
}

// GetVacancy retrieves a vacancy by slug. Hidden vacancies are visible to
// the author and staff only; public views bump the counter.
func (s *VacancyService) GetVacancy(ctx context.Context, actor domain.Actor, vacancySlug string) (*domain.Vacancy, error) {
	vac, err := s.vacancyRepo.GetBySlug(ctx, vacancySlug)
	if err != nil {
		return nil, err
	}

	if !vac.IsListed() {
		if !vac.IsAuthoredBy(actor.ID) && !actor.IsStaff {
			return nil, fmt.Errorf("%w: vacancy %s is not visible", domain.ErrVacancyNotFound, vac.ID)
		}
		return vac, nil
	}

	if !vac.IsAuthoredBy(actor.ID) {
		if err := s.vacancyRepo.IncrementViews(ctx, vac.ID); err != nil {
			slog.Error("failed to bump vacancy views", "vacancy_id", vac.ID, "error", err)
		}
	}

	return vac, nil
}

// ListVacancies retrieves the public vacancy listing.
func (s *VacancyService) ListVacancies(ctx context.Context, filters repository.VacancyListFilters) ([]*domain.Vacancy, int, error) {
	return s.vacancyRepo.List(ctx, filters)
}

// ListSpecialties retrieves the specialty reference list.
func (s *VacancyService) ListSpecialties(ctx context.Context) ([]*domain.Specialty, error) {
	return s.vacancyRepo.ListSpecialties(ctx)
}

// Apply sends an application to a vacancy. If the candidate already
// applied, the existing application is returned unchanged and created is
// false.
func (s *VacancyService) Apply(
	ctx context.Context,
	actor domain.Actor,
	vacancyID string,
	message string,
) (resp *domain.VacancyResponse, created bool, err error) {
	if message == "" {
		return nil, false, domain.ErrEmptyMessage
	}

	vac, err := s.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, false, err
	}
	if vac.IsAuthoredBy(actor.ID) {
		return nil, false, fmt.Errorf("%w: user %s authored vacancy %s", domain.ErrOwnTask, actor.ID, vacancyID)
	}
	if !vac.IsListed() {
		return nil, false, fmt.Errorf("%w: vacancy %s is not visible", domain.ErrVacancyNotFound, vacancyID)
	}

	existing, err := s.vacancyRepo.GetResponse(ctx, vacancyID, actor.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrResponseNotFound) {
		return nil, false, err
	}

	resp = &domain.VacancyResponse{
		VacancyID:   vacancyID,
		CandidateID: actor.ID,
		Message:     message,
	}
	resp, err = s.vacancyRepo.CreateResponse(ctx, resp)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			existing, getErr := s.vacancyRepo.GetResponse(ctx, vacancyID, actor.ID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	slog.Info("vacancy application sent",
		"response_id", resp.ID,
		"vacancy_id", vacancyID,
		"candidate_id", actor.ID,
	)

	return resp, true, nil
}

// ListApplications retrieves the applications to a vacancy. Employer only.
func (s *VacancyService) ListApplications(ctx context.Context, actor domain.Actor, vacancyID string) ([]*domain.VacancyResponse, error) {
	vac, err := s.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if !vac.IsAuthoredBy(actor.ID) && !actor.IsStaff {
		return nil, fmt.Errorf("%w: user %s is not the author of vacancy %s", domain.ErrPermissionDenied, actor.ID, vacancyID)
	}

	responses, err := s.vacancyRepo.ListResponses(ctx, vacancyID)
	if err != nil {
		return nil, err
	}

	for _, resp := range responses {
		if !resp.IsRead {
			if err := s.vacancyRepo.MarkResponseRead(ctx, resp.ID); err != nil {
				slog.Error("failed to mark vacancy response read", "response_id", resp.ID, "error", err)
			}
		}
	}

	return responses, nil
}
