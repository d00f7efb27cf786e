package handler

import (
	"encoding/json"
	"net/http"

	"github.com/podryad/podryad/internal/handler/dto"
)

// handleGetThread returns the negotiation thread of a response and marks
// the actor's incoming messages read.
// @Summary Get a response thread
// @Tags messages
// @Produce json
// @Param id path string true "Response ID"
// @Success 200 {array} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /responses/{id}/messages [get]
func (h *Handler) handleGetThread(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	responseID, ok := extractID(w, r)
	if !ok {
		return
	}

	msgs, err := h.messageService.GetThread(r.Context(), actor, responseID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, dto.ToMessageResponse(msg))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleSendThreadMessage appends a message to a response thread.
// @Summary Send a message in a response thread
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Response ID"
// @Param request body dto.MessageRequest true "Message"
// @Success 201 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /responses/{id}/messages [post]
func (h *Handler) handleSendThreadMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	responseID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	msg, err := h.messageService.SendThreadMessage(r.Context(), actor, responseID, req.Content)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToMessageResponse(msg))
}

// handleSendServiceMessage writes a direct message about a service.
// @Summary Message a service author or customer
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.ServiceMessageRequest true "Message"
// @Success 201 {object} dto.ServiceMessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /services/{id}/messages [post]
func (h *Handler) handleSendServiceMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	serviceID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.ServiceMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	msg, err := h.messageService.SendServiceMessage(r.Context(), actor, serviceID, req.RecipientID, req.Content)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToServiceMessageResponse(msg))
}

// handleGetServiceThread returns the conversation between the actor and
// another user about a service. The other party is picked with ?with=.
// @Summary Get a service conversation
// @Tags messages
// @Produce json
// @Param id path string true "Service ID"
// @Param with query string true "Other party's user ID"
// @Success 200 {array} dto.ServiceMessageResponse
// @Security BearerAuth
// @Router /services/{id}/messages [get]
func (h *Handler) handleGetServiceThread(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	serviceID, ok := extractID(w, r)
	if !ok {
		return
	}

	otherID := r.URL.Query().Get("with")
	if otherID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "with query parameter is required")
		return
	}

	msgs, err := h.messageService.GetServiceThread(r.Context(), actor, serviceID, otherID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.ServiceMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, dto.ToServiceMessageResponse(msg))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleMarkServiceMessageRead flags an incoming service message as read.
// @Summary Mark a service message read
// @Tags messages
// @Param id path string true "Message ID"
// @Success 204
// @Security BearerAuth
// @Router /messages/{id}/read [post]
func (h *Handler) handleMarkServiceMessageRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	messageID, ok := extractID(w, r)
	if !ok {
		return
	}

	if err := h.messageService.MarkServiceMessageRead(r.Context(), actor, messageID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
