package handler

import (
	"encoding/json"
	"net/http"

	"github.com/podryad/podryad/internal/handler/dto"
)

// handleListArticles returns published articles, newest first.
// @Summary List published articles
// @Tags articles
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ArticleListResponse
// @Router /articles [get]
func (h *Handler) handleListArticles(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	articles, total, err := h.articleService.ListArticles(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.ArticleResponse, 0, len(articles))
	for _, art := range articles {
		out = append(out, dto.ToArticleResponse(art))
	}
	respondJSON(w, http.StatusOK, dto.ArticleListResponse{
		Articles: out,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// handleGetArticle returns one published article by slug.
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} dto.ArticleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /articles/{slug} [get]
func (h *Handler) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	articleSlug := r.PathValue("slug")
	if articleSlug == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "article slug is required")
		return
	}

	art, err := h.articleService.GetArticle(r.Context(), articleSlug)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToArticleResponse(art))
}

// handleCreateArticle creates a draft article. Staff only.
// @Summary Create an article draft
// @Tags articles
// @Accept json
// @Produce json
// @Param request body dto.ArticleRequest true "Article fields"
// @Success 201 {object} dto.ArticleResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /articles [post]
func (h *Handler) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	art, err := h.articleService.CreateArticle(r.Context(), actor, req.Title, req.Body)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToArticleResponse(art))
}

// handlePublishArticle publishes a draft. Staff only.
// @Summary Publish an article
// @Tags articles
// @Param id path string true "Article ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /articles/{id}/publish [post]
func (h *Handler) handlePublishArticle(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	articleID, ok := extractID(w, r)
	if !ok {
		return
	}

	if err := h.articleService.PublishArticle(r.Context(), actor, articleID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
