package handler

import (
	"encoding/json"
	"net/http"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/handler/dto"
	"github.com/podryad/podryad/internal/middleware"
	"github.com/podryad/podryad/internal/service"
)

// requireActor extracts the authenticated actor, rejecting anonymous
// requests with 401.
func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor := middleware.GetActorFromContext(r.Context())
	if actor.IsAnonymous() {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_REQUIRED", "Authentication required")
		return domain.Anonymous, false
	}
	return actor, true
}

// handleRegister creates an account.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, token, err := h.userService.Register(r.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.AuthResponse{
		User:  dto.ToUserResponse(user, true),
		Token: token,
	})
}

// handleLogin verifies credentials and issues a token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, token, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.AuthResponse{
		User:  dto.ToUserResponse(user, true),
		Token: token,
	})
}

// handleGetMe returns the authenticated user's own profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	user, stats, err := h.userService.GetProfile(r.Context(), actor.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ProfileResponse{
		User:  dto.ToUserResponse(user, true),
		Stats: dto.ToUserStats(stats),
	})
}

// handleUpdateProfile saves the authenticated user's profile fields.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), actor, req.FirstName, req.LastName, req.Phone, req.Bio)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user, true))
}

// handleGetProfile returns a public profile with counters.
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := extractID(w, r)
	if !ok {
		return
	}

	user, stats, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())
	private := actor.ID == userID || actor.IsStaff

	respondJSON(w, http.StatusOK, dto.ProfileResponse{
		User:  dto.ToUserResponse(user, private),
		Stats: dto.ToUserStats(stats),
	})
}

// handleListUserReviews returns the reviews received by a user.
// @Summary List a user's reviews
// @Tags reviews
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.ReviewListResponse
// @Router /users/{id}/reviews [get]
func (h *Handler) handleListUserReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := extractID(w, r)
	if !ok {
		return
	}

	reviews, avg, count, err := h.taskService.ListUserReviews(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, dto.ToReviewResponse(review))
	}

	respondJSON(w, http.StatusOK, dto.ReviewListResponse{
		Reviews:       out,
		AverageRating: avg,
		Count:         count,
	})
}
