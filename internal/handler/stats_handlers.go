package handler

import (
	"net/http"

	"github.com/podryad/podryad/internal/handler/dto"
)

// handleGetStats returns overall marketplace statistics. Staff only.
// @Summary Get site statistics
// @Tags stats
// @Produce json
// @Success 200 {object} dto.SiteStatsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if !actor.IsStaff {
		respondError(w, http.StatusForbidden, "INSUFFICIENT_ACCESS", "Staff access required")
		return
	}

	stats, err := h.taskRepo.GetSiteStats(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.SiteStatsResponse{
		TasksByStatus:     stats.TasksByStatus,
		OpenTasks:         stats.OpenTasks,
		PendingModeration: stats.PendingModeration,
		RegisteredUsers:   stats.RegisteredUsers,
	})
}
