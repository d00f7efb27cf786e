package handler

import (
	"net/http"

	"github.com/podryad/podryad/internal/handler/dto"
)

// handleListSections returns the category sections.
// @Summary List category sections
// @Tags taxonomy
// @Produce json
// @Success 200 {array} dto.SectionResponse
// @Router /sections [get]
func (h *Handler) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.taxonomyRepo.ListSections(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, dto.ToSectionResponse(s))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleListCategories returns the categories of one section.
// @Summary List categories of a section
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Section slug"
// @Success 200 {array} dto.CategoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sections/{slug}/categories [get]
func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	sectionSlug := r.PathValue("slug")
	if sectionSlug == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "section slug is required")
		return
	}

	section, err := h.taxonomyRepo.GetSectionBySlug(r.Context(), sectionSlug)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	categories, err := h.taxonomyRepo.ListCategories(r.Context(), section.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.ToCategoryResponse(c))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleListRegions returns the regions.
// @Summary List regions
// @Tags taxonomy
// @Produce json
// @Success 200 {array} dto.RegionResponse
// @Router /regions [get]
func (h *Handler) handleListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.taxonomyRepo.ListRegions(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.RegionResponse, 0, len(regions))
	for _, reg := range regions {
		out = append(out, dto.ToRegionResponse(reg))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleListCities returns the cities of one region.
// @Summary List cities of a region
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Region slug"
// @Success 200 {array} dto.CityResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /regions/{slug}/cities [get]
func (h *Handler) handleListCities(w http.ResponseWriter, r *http.Request) {
	regionSlug := r.PathValue("slug")
	if regionSlug == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "region slug is required")
		return
	}

	region, err := h.taxonomyRepo.GetRegionBySlug(r.Context(), regionSlug)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	cities, err := h.taxonomyRepo.ListCities(r.Context(), region.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.CityResponse, 0, len(cities))
	for _, city := range cities {
		out = append(out, dto.ToCityResponse(city))
	}
	respondJSON(w, http.StatusOK, out)
}
