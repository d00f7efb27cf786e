package handler

import (
	"encoding/json"
	"net/http"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/handler/dto"
	"github.com/podryad/podryad/internal/middleware"
	"github.com/podryad/podryad/internal/repository"
	"github.com/podryad/podryad/internal/service"
)

func serviceInputFromRequest(w http.ResponseWriter, req dto.ServiceRequest) (service.ServiceInput, bool) {
	price, ok := parsePrice(w, req.Price)
	if !ok {
		return service.ServiceInput{}, false
	}
	return service.ServiceInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		LocationType:  domain.LocationType(req.LocationType),
		CityID:        req.CityID,
		Price:         price,
		PaymentPeriod: domain.PaymentPeriod(req.PaymentPeriod),
	}, true
}

// handleListServices returns the public service catalog.
// @Summary List services
// @Description Lists active, moderated service offerings. Filterable by section, category and city.
// @Tags services
// @Produce json
// @Param section query string false "Section slug"
// @Param category query string false "Category slug"
// @Param city_id query string false "City ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ServiceListResponse
// @Router /services [get]
func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()

	filters := repository.ServiceListFilters{
		SectionSlug:  q.Get("section"),
		CategorySlug: q.Get("category"),
		Limit:        limit,
		Offset:       offset,
	}
	if cityID := q.Get("city_id"); cityID != "" {
		filters.CityID = &cityID
	}
	if authorID := q.Get("author_id"); authorID != "" {
		filters.AuthorID = &authorID
	}

	services, total, err := h.catalogService.ListServices(r.Context(), filters)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToServiceListResponse(services, total, limit, offset))
}

// handleCreateService posts a new service offering.
// @Summary Create a service
// @Description Creates a service offering. It stays hidden from the catalog until moderated.
// @Tags services
// @Accept json
// @Produce json
// @Param request body dto.ServiceRequest true "Service fields"
// @Success 201 {object} dto.ServiceResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /services [post]
func (h *Handler) handleCreateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	in, ok := serviceInputFromRequest(w, req)
	if !ok {
		return
	}

	svc, err := h.catalogService.CreateService(r.Context(), actor, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToServiceResponse(svc))
}

// handleGetService returns one service by slug, honoring visibility.
// @Summary Get service details
// @Tags services
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /services/{slug} [get]
func (h *Handler) handleGetService(w http.ResponseWriter, r *http.Request) {
	serviceSlug := r.PathValue("slug")
	if serviceSlug == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "service slug is required")
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	svc, err := h.catalogService.GetService(r.Context(), actor, serviceSlug)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := dto.ToServiceResponse(svc)
	if !svc.IsAuthoredBy(actor.ID) && !actor.IsStaff {
		resp.ModerationComment = ""
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleEditService updates an offering, sending it back to moderation.
// @Summary Edit a service
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.ServiceRequest true "Service fields"
// @Success 200 {object} dto.ServiceResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [put]
func (h *Handler) handleEditService(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	serviceID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	in, ok := serviceInputFromRequest(w, req)
	if !ok {
		return
	}

	svc, err := h.catalogService.EditService(r.Context(), actor, serviceID, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToServiceResponse(svc))
}
