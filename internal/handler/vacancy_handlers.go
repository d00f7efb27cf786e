package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/handler/dto"
	"github.com/podryad/podryad/internal/middleware"
	"github.com/podryad/podryad/internal/repository"
	"github.com/podryad/podryad/internal/service"
)

func vacancyInputFromRequest(w http.ResponseWriter, req dto.VacancyRequest) (service.VacancyInput, bool) {
	salary, err := decimal.NewFromString(req.Salary)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "salary must be a decimal number")
		return service.VacancyInput{}, false
	}
	return service.VacancyInput{
		Title:           req.Title,
		Description:     req.Description,
		SpecialtyID:     req.SpecialtyID,
		Experience:      domain.Experience(req.Experience),
		EmploymentType:  domain.EmploymentType(req.EmploymentType),
		WorkNature:      domain.WorkNature(req.WorkNature),
		OtherConditions: req.OtherConditions,
		Salary:          salary,
		Location:        req.Location,
		CityID:          req.CityID,
	}, true
}

// handleListVacancies returns the public vacancy listing.
// @Summary List vacancies
// @Description Lists active, moderated vacancies. Filterable by specialty and city.
// @Tags vacancies
// @Produce json
// @Param specialty query string false "Specialty slug"
// @Param city_id query string false "City ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.VacancyListResponse
// @Router /vacancies [get]
func (h *Handler) handleListVacancies(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()

	filters := repository.VacancyListFilters{
		SpecialtySlug: q.Get("specialty"),
		Limit:         limit,
		Offset:        offset,
	}
	if cityID := q.Get("city_id"); cityID != "" {
		filters.CityID = &cityID
	}
	if authorID := q.Get("author_id"); authorID != "" {
		filters.AuthorID = &authorID
	}

	vacancies, total, err := h.vacancyService.ListVacancies(r.Context(), filters)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToVacancyListResponse(vacancies, total, limit, offset))
}

// handleCreateVacancy posts a new vacancy.
// @Summary Create a vacancy
// @Description Creates a vacancy. It stays hidden from the listing until moderated.
// @Tags vacancies
// @Accept json
// @Produce json
// @Param request body dto.VacancyRequest true "Vacancy fields"
// @Success 201 {object} dto.VacancyResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /vacancies [post]
func (h *Handler) handleCreateVacancy(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.VacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	in, ok := vacancyInputFromRequest(w, req)
	if !ok {
		return
	}

	vac, err := h.vacancyService.CreateVacancy(r.Context(), actor, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToVacancyResponse(vac))
}

// handleGetVacancy returns one vacancy by slug, honoring visibility.
// @Summary Get vacancy details
// @Tags vacancies
// @Produce json
// @Param slug path string true "Vacancy slug"
// @Success 200 {object} dto.VacancyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /vacancies/{slug} [get]
func (h *Handler) handleGetVacancy(w http.ResponseWriter, r *http.Request) {
	vacancySlug := r.PathValue("slug")
	if vacancySlug == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "vacancy slug is required")
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	vac, err := h.vacancyService.GetVacancy(r.Context(), actor, vacancySlug)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := dto.ToVacancyResponse(vac)
	if !vac.IsAuthoredBy(actor.ID) && !actor.IsStaff {
		resp.ModerationComment = ""
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleEditVacancy updates a vacancy, sending it back to moderation.
// @Summary Edit a vacancy
// @Tags vacancies
// @Accept json
// @Produce json
// @Param id path string true "Vacancy ID"
// @Param request body dto.VacancyRequest true "Vacancy fields"
// @Success 200 {object} dto.VacancyResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /vacancies/{id} [put]
func (h *Handler) handleEditVacancy(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	vacancyID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.VacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	in, ok := vacancyInputFromRequest(w, req)
	if !ok {
		return
	}

	vac, err := h.vacancyService.EditVacancy(r.Context(), actor, vacancyID, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToVacancyResponse(vac))
}

// handleApplyVacancy sends an application to a vacancy. A repeat
// application returns the existing one with 200.
// @Summary Apply to a vacancy
// @Tags vacancies
// @Accept json
// @Produce json
// @Param id path string true "Vacancy ID"
// @Param request body dto.VacancyApplyRequest true "Application message"
// @Success 200 {object} dto.VacancyApplicationResponse
// @Success 201 {object} dto.VacancyApplicationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /vacancies/{id}/responses [post]
func (h *Handler) handleApplyVacancy(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	vacancyID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.VacancyApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	resp, created, err := h.vacancyService.Apply(r.Context(), actor, vacancyID, req.Message)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, dto.ToVacancyApplicationResponse(resp))
}

// handleListVacancyApplications returns the applications to a vacancy and
// marks them read. Employer only.
// @Summary List vacancy applications
// @Tags vacancies
// @Produce json
// @Param id path string true "Vacancy ID"
// @Success 200 {array} dto.VacancyApplicationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /vacancies/{id}/responses [get]
func (h *Handler) handleListVacancyApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	vacancyID, ok := extractID(w, r)
	if !ok {
		return
	}

	responses, err := h.vacancyService.ListApplications(r.Context(), actor, vacancyID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.VacancyApplicationResponse, 0, len(responses))
	for _, resp := range responses {
		out = append(out, dto.ToVacancyApplicationResponse(resp))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleListSpecialties returns the specialty reference list.
// @Summary List specialties
// @Tags vacancies
// @Produce json
// @Success 200 {array} dto.SpecialtyResponse
// @Router /specialties [get]
func (h *Handler) handleListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.vacancyService.ListSpecialties(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.SpecialtyResponse, 0, len(specialties))
	for _, sp := range specialties {
		out = append(out, dto.ToSpecialtyResponse(sp))
	}
	respondJSON(w, http.StatusOK, out)
}
