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

// parsePrice converts an optional decimal string from a request body.
func parsePrice(w http.ResponseWriter, raw *string) (*decimal.Decimal, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	price, err := decimal.NewFromString(*raw)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "price must be a decimal number")
		return nil, false
	}
	return &price, true
}

func taskInputFromRequest(w http.ResponseWriter, req dto.TaskRequest) (service.TaskInput, bool) {
	price, ok := parsePrice(w, req.Price)
	if !ok {
		return service.TaskInput{}, false
	}
	return service.TaskInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		LocationType:  domain.LocationType(req.LocationType),
		CityID:        req.CityID,
		Price:         price,
		PaymentPeriod: domain.PaymentPeriod(req.PaymentPeriod),
	}, true
}

// handleListTasks returns the public task listing.
// @Summary List open tasks
// @Description Lists active, moderated, open tasks. Filterable by section, category and city.
// @Tags tasks
// @Produce json
// @Param section query string false "Section slug"
// @Param category query string false "Category slug"
// @Param city_id query string false "City ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.TaskListResponse
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()

	filters := repository.TaskListFilters{
		SectionSlug:  q.Get("section"),
		CategorySlug: q.Get("category"),
		Limit:        limit,
		Offset:       offset,
	}
	if cityID := q.Get("city_id"); cityID != "" {
		filters.CityID = &cityID
	}

	tasks, total, err := h.taskService.ListTasks(r.Context(), filters)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskListResponse(tasks, total, limit, offset))
}

// handleCreateTask posts a new task.
// @Summary Create a task
// @Description Creates an open task. It stays hidden from listings until moderated.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.TaskRequest true "Task fields"
// @Success 201 {object} dto.TaskResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	in, ok := taskInputFromRequest(w, req)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), actor, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleListOwnTasks returns the actor's tasks in any status.
// @Summary List own tasks
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.TaskListResponse
// @Security BearerAuth
// @Router /tasks/my [get]
func (h *Handler) handleListOwnTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListOwnTasks(r.Context(), actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskListResponse(tasks, len(tasks), len(tasks), 0))
}

// handleGetTask returns one task by slug, honoring visibility.
// @Summary Get task details
// @Tags tasks
// @Produce json
// @Param slug path string true "Task slug"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{slug} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskSlug := r.PathValue("slug")
	if taskSlug == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task slug is required")
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	task, err := h.taskService.GetTask(r.Context(), actor, taskSlug)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := dto.ToTaskResponse(task)
	if !task.IsAuthoredBy(actor.ID) && !actor.IsStaff {
		resp.ModerationComment = ""
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleEditTask updates an open task, sending it back to moderation.
// @Summary Edit a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.TaskRequest true "Task fields"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *Handler) handleEditTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	in, ok := taskInputFromRequest(w, req)
	if !ok {
		return
	}

	task, err := h.taskService.EditTask(r.Context(), actor, taskID, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleCreateResponse lets a candidate apply to a task. A repeat
// application returns the existing response with 200.
// @Summary Respond to a task
// @Tags responses
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.CreateResponseRequest true "Response message"
// @Success 200 {object} dto.TaskResponseInfo
// @Success 201 {object} dto.TaskResponseInfo
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/responses [post]
func (h *Handler) handleCreateResponse(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.CreateResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	resp, created, err := h.taskService.CreateResponse(r.Context(), actor, taskID, req.Message)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, dto.ToTaskResponseInfo(resp))
}

// handleListResponses returns the responses on a task.
// @Summary List task responses
// @Description The author sees all responses; a candidate sees only their own.
// @Tags responses
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {array} dto.TaskResponseInfo
// @Security BearerAuth
// @Router /tasks/{id}/responses [get]
func (h *Handler) handleListResponses(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	responses, err := h.taskService.ListResponses(r.Context(), actor, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]dto.TaskResponseInfo, 0, len(responses))
	for _, resp := range responses {
		out = append(out, dto.ToTaskResponseInfo(resp))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleDecideResponse applies the author's accept or reject decision.
// @Summary Accept or reject a response
// @Description Accepting assigns the executor and moves the task to in_progress.
// @Tags responses
// @Accept json
// @Produce json
// @Param id path string true "Response ID"
// @Param request body dto.DecideResponseRequest true "Decision"
// @Success 200 {object} dto.TaskResponseInfo
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /responses/{id} [patch]
func (h *Handler) handleDecideResponse(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	responseID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.DecideResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	resp, err := h.taskService.DecideResponse(r.Context(), actor, responseID, domain.ResponseStatus(req.Status))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponseInfo(resp))
}

// handleWithdrawResponse lets a candidate pull back a pending response.
// @Summary Withdraw a response
// @Tags responses
// @Param id path string true "Response ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /responses/{id} [delete]
func (h *Handler) handleWithdrawResponse(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	responseID, ok := extractID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.WithdrawResponse(r.Context(), actor, responseID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCompleteTask is the executor requesting completion confirmation.
// @Summary Request completion confirmation
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/complete [post]
func (h *Handler) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), actor, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleConfirmCompletion is the author accepting completed work.
// @Summary Confirm completed work
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/confirm [post]
func (h *Handler) handleConfirmCompletion(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.ConfirmCompletion(r.Context(), actor, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleCreateReview records a rating on a completed task. A repeat
// review returns the existing one with 200.
// @Summary Review the other party of a completed task
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 200 {object} dto.ReviewResponse
// @Success 201 {object} dto.ReviewResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/reviews [post]
func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	review, created, err := h.taskService.CreateReview(r.Context(), actor, taskID, req.Rating, req.Comment)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, dto.ToReviewResponse(review))
}
