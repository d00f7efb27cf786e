package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/handler/dto"
)

// handleFileComplaint files a complaint against another user.
// @Summary File a complaint
// @Tags moderation
// @Accept json
// @Produce json
// @Param request body dto.ComplaintRequest true "Complaint"
// @Success 201 {object} dto.ComplaintResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /complaints [post]
func (h *Handler) handleFileComplaint(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.ComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	complaint, err := h.moderationService.FileComplaint(r.Context(), actor, req.AccusedID, req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToComplaintResponse(complaint))
}

// handleListPendingTasks returns the moderation queue for tasks.
// @Summary List tasks pending moderation
// @Tags moderation
// @Produce json
// @Success 200 {array} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/tasks [get]
func (h *Handler) handleListPendingTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	tasks, err := h.moderationService.ListPendingTasks(r.Context(), actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, dto.ToTaskResponse(task))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleModerateTask approves or rejects a task.
// @Summary Moderate a task
// @Description Rejection requires a comment explaining the decision.
// @Tags moderation
// @Accept json
// @Param id path string true "Task ID"
// @Param request body dto.ModerateRequest true "Decision"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/tasks/{id} [post]
func (h *Handler) handleModerateTask(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.moderationService.ModerateTask)
}

// handleModerateService approves or rejects a service offering.
// @Summary Moderate a service
// @Tags moderation
// @Accept json
// @Param id path string true "Service ID"
// @Param request body dto.ModerateRequest true "Decision"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/services/{id} [post]
func (h *Handler) handleModerateService(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.moderationService.ModerateService)
}

// handleModerateVacancy approves or rejects a vacancy.
// @Summary Moderate a vacancy
// @Tags moderation
// @Accept json
// @Param id path string true "Vacancy ID"
// @Param request body dto.ModerateRequest true "Decision"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/vacancies/{id} [post]
func (h *Handler) handleModerateVacancy(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.moderationService.ModerateVacancy)
}

type moderateFunc func(ctx context.Context, actor domain.Actor, id string, approve bool, comment string) error

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, decide moderateFunc) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.ModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := decide(r.Context(), actor, id, req.Approve, req.Comment); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleWarnUser issues a warning to a user.
// @Summary Warn a user
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.WarnRequest true "Warning"
// @Success 201 {object} dto.WarningResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/users/{id}/warnings [post]
func (h *Handler) handleWarnUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	userID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.WarnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	warning, err := h.moderationService.WarnUser(r.Context(), actor, userID, req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToWarningResponse(warning))
}

// handleListWarnings returns the warnings issued to a user.
// @Summary List a user's warnings
// @Tags moderation
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.WarningResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/users/{id}/warnings [get]
func (h *Handler) handleListWarnings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	userID, ok := extractID(w, r)
	if !ok {
		return
	}

	warnings, err := h.moderationService.ListWarnings(r.Context(), actor, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.WarningResponse, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, dto.ToWarningResponse(warning))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleBanUser bans a user, permanently when banned_until is omitted.
// @Summary Ban a user
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.BanRequest true "Ban"
// @Success 201 {object} dto.BanResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/users/{id}/bans [post]
func (h *Handler) handleBanUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	userID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	var until *time.Time
	if req.BannedUntil != nil {
		t, err := time.Parse(time.RFC3339, *req.BannedUntil)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "banned_until must be an RFC 3339 timestamp")
			return
		}
		until = &t
	}

	ban, err := h.moderationService.BanUser(r.Context(), actor, userID, req.Reason, until)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToBanResponse(ban))
}

// handleUnbanUser revokes a user's active ban.
// @Summary Unban a user
// @Tags moderation
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/users/{id}/bans [delete]
func (h *Handler) handleUnbanUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	userID, ok := extractID(w, r)
	if !ok {
		return
	}

	if err := h.moderationService.UnbanUser(r.Context(), actor, userID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListComplaints returns the complaint queue, oldest first.
// @Summary List complaints
// @Tags moderation
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} dto.ComplaintResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/complaints [get]
func (h *Handler) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var status *domain.ComplaintStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.ComplaintStatus(v)
		status = &s
	}

	complaints, err := h.moderationService.ListComplaints(r.Context(), actor, status)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.ComplaintResponse, 0, len(complaints))
	for _, complaint := range complaints {
		out = append(out, dto.ToComplaintResponse(complaint))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleResolveComplaint closes an open complaint.
// @Summary Resolve a complaint
// @Tags moderation
// @Accept json
// @Param id path string true "Complaint ID"
// @Param request body dto.ResolveComplaintRequest true "Resolution"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /moderation/complaints/{id} [patch]
func (h *Handler) handleResolveComplaint(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	complaintID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.ResolveComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	err := h.moderationService.ResolveComplaint(r.Context(), actor, complaintID, domain.ComplaintStatus(req.Status), req.Note)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
