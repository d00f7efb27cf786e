package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/podryad/podryad/docs" // Import generated docs
	"github.com/podryad/podryad/internal/auth"
	"github.com/podryad/podryad/internal/config"
	"github.com/podryad/podryad/internal/handler/dto"
	"github.com/podryad/podryad/internal/middleware"
	"github.com/podryad/podryad/internal/repository"
	"github.com/podryad/podryad/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool              *pgxpool.Pool
	taskService       *service.TaskService
	userService       *service.UserService
	messageService    *service.MessageService
	catalogService    *service.CatalogService
	vacancyService    *service.VacancyService
	moderationService *service.ModerationService
	articleService    *service.ArticleService
	taskRepo          *repository.TaskRepository
	taxonomyRepo      *repository.TaxonomyRepository
	authMiddleware    *middleware.AuthMiddleware
	banMiddleware     *middleware.BanMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, tokens *auth.TokenManager) *Handler {
	// Create repositories
	taskRepo := repository.NewTaskRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	vacancyRepo := repository.NewVacancyRepository(pool)
	taxonomyRepo := repository.NewTaxonomyRepository(pool)
	moderationRepo := repository.NewModerationRepository(pool)
	articleRepo := repository.NewArticleRepository(pool)

	// Create services
	taskService := service.NewTaskService(pool, taskRepo, responseRepo, reviewRepo, taxonomyRepo)
	userService := service.NewUserService(userRepo, taskRepo, tokens)
	messageService := service.NewMessageService(messageRepo, responseRepo, taskRepo, serviceRepo)
	catalogService := service.NewCatalogService(serviceRepo, taxonomyRepo)
	vacancyService := service.NewVacancyService(vacancyRepo, taxonomyRepo)
	moderationService := service.NewModerationService(moderationRepo, taskRepo, serviceRepo, vacancyRepo, userRepo)
	articleService := service.NewArticleService(articleRepo)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	banMiddleware := middleware.NewBanMiddleware(moderationService)

	return &Handler{
		pool:              pool,
		taskService:       taskService,
		userService:       userService,
		messageService:    messageService,
		catalogService:    catalogService,
		vacancyService:    vacancyService,
		moderationService: moderationService,
		articleService:    articleService,
		taskRepo:          taskRepo,
		taxonomyRepo:      taxonomyRepo,
		authMiddleware:    authMiddleware,
		banMiddleware:     banMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Public endpoints; the optional token only widens visibility.
	public := func(fn http.HandlerFunc) http.Handler {
		return h.authMiddleware.MaybeAuthenticate(fn)
	}
	// Authenticated endpoints behind the ban check.
	private := func(fn http.HandlerFunc) http.Handler {
		return h.authMiddleware.Authenticate(h.banMiddleware.CheckBan(fn))
	}

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)

	// Users
	mux.Handle("GET /api/v1/users/me", private(h.handleGetMe))
	mux.Handle("PATCH /api/v1/users/me", private(h.handleUpdateProfile))
	mux.Handle("GET /api/v1/users/{id}", public(h.handleGetProfile))
	mux.Handle("GET /api/v1/users/{id}/reviews", public(h.handleListUserReviews))

	// Tasks and their lifecycle
	mux.Handle("GET /api/v1/tasks", public(h.handleListTasks))
	mux.Handle("POST /api/v1/tasks", private(h.handleCreateTask))
	mux.Handle("GET /api/v1/tasks/my", private(h.handleListOwnTasks))
	mux.Handle("GET /api/v1/tasks/{slug}", public(h.handleGetTask))
	mux.Handle("PUT /api/v1/tasks/{id}", private(h.handleEditTask))
	mux.Handle("POST /api/v1/tasks/{id}/responses", private(h.handleCreateResponse))
	mux.Handle("GET /api/v1/tasks/{id}/responses", private(h.handleListResponses))
	mux.Handle("POST /api/v1/tasks/{id}/complete", private(h.handleCompleteTask))
	mux.Handle("POST /api/v1/tasks/{id}/confirm", private(h.handleConfirmCompletion))
	mux.Handle("POST /api/v1/tasks/{id}/reviews", private(h.handleCreateReview))

	// Responses and negotiation threads
	mux.Handle("PATCH /api/v1/responses/{id}", private(h.handleDecideResponse))
	mux.Handle("DELETE /api/v1/responses/{id}", private(h.handleWithdrawResponse))
	mux.Handle("GET /api/v1/responses/{id}/messages", private(h.handleGetThread))
	mux.Handle("POST /api/v1/responses/{id}/messages", private(h.handleSendThreadMessage))

	// Services
	mux.Handle("GET /api/v1/services", public(h.handleListServices))
	mux.Handle("POST /api/v1/services", private(h.handleCreateService))
	mux.Handle("GET /api/v1/services/{slug}", public(h.handleGetService))
	mux.Handle("PUT /api/v1/services/{id}", private(h.handleEditService))
	mux.Handle("POST /api/v1/services/{id}/messages", private(h.handleSendServiceMessage))
	mux.Handle("GET /api/v1/services/{id}/messages", private(h.handleGetServiceThread))
	mux.Handle("POST /api/v1/messages/{id}/read", private(h.handleMarkServiceMessageRead))

	// Vacancies
	mux.Handle("GET /api/v1/vacancies", public(h.handleListVacancies))
	mux.Handle("POST /api/v1/vacancies", private(h.handleCreateVacancy))
	mux.Handle("GET /api/v1/vacancies/{slug}", public(h.handleGetVacancy))
	mux.Handle("PUT /api/v1/vacancies/{id}", private(h.handleEditVacancy))
	mux.Handle("POST /api/v1/vacancies/{id}/responses", private(h.handleApplyVacancy))
	mux.Handle("GET /api/v1/vacancies/{id}/responses", private(h.handleListVacancyApplications))
	mux.HandleFunc("GET /api/v1/specialties", h.handleListSpecialties)

	// Taxonomy reference data
	mux.HandleFunc("GET /api/v1/sections", h.handleListSections)
	mux.HandleFunc("GET /api/v1/sections/{slug}/categories", h.handleListCategories)
	mux.HandleFunc("GET /api/v1/regions", h.handleListRegions)
	mux.HandleFunc("GET /api/v1/regions/{slug}/cities", h.handleListCities)

	// Articles
	mux.HandleFunc("GET /api/v1/articles", h.handleListArticles)
	mux.HandleFunc("GET /api/v1/articles/{slug}", h.handleGetArticle)
	mux.Handle("POST /api/v1/articles", private(h.handleCreateArticle))
	mux.Handle("POST /api/v1/articles/{id}/publish", private(h.handlePublishArticle))

	// Complaints
	mux.Handle("POST /api/v1/complaints", private(h.handleFileComplaint))

	// Staff moderation surface
	mux.Handle("GET /api/v1/moderation/tasks", private(h.handleListPendingTasks))
	mux.Handle("POST /api/v1/moderation/tasks/{id}", private(h.handleModerateTask))
	mux.Handle("POST /api/v1/moderation/services/{id}", private(h.handleModerateService))
	mux.Handle("POST /api/v1/moderation/vacancies/{id}", private(h.handleModerateVacancy))
	mux.Handle("POST /api/v1/moderation/users/{id}/warnings", private(h.handleWarnUser))
	mux.Handle("GET /api/v1/moderation/users/{id}/warnings", private(h.handleListWarnings))
	mux.Handle("POST /api/v1/moderation/users/{id}/bans", private(h.handleBanUser))
	mux.Handle("DELETE /api/v1/moderation/users/{id}/bans", private(h.handleUnbanUser))
	mux.Handle("GET /api/v1/moderation/complaints", private(h.handleListComplaints))
	mux.Handle("PATCH /api/v1/moderation/complaints/{id}", private(h.handleResolveComplaint))

	// Stats
	mux.Handle("GET /api/v1/stats", private(h.handleGetStats))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent).
func extractID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id must be a valid UUID")
		return "", false
	}

	return id, true
}

// pagination parses limit and offset query parameters with the configured
// defaults and cap.
func pagination(r *http.Request) (limit, offset int) {
	limit = config.DefaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
