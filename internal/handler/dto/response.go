package dto

import (
	"time"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/repository"
)

// AuthResponse represents the response to register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse represents a user in API responses. The email is only
// included for the account owner.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Bio       string    `json:"bio"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse represents a public profile with counters.
type ProfileResponse struct {
	User  UserResponse `json:"user"`
	Stats UserStats    `json:"stats"`
}

// UserStats represents the public counters of a user.
type UserStats struct {
	TasksPosted     int     `json:"tasks_posted"`
	TasksCompleted  int     `json:"tasks_completed"`
	ServicesOffered int     `json:"services_offered"`
	ReviewsReceived int     `json:"reviews_received"`
	AverageRating   float64 `json:"average_rating"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	AuthorID          string    `json:"author_id"`
	CategoryID        string    `json:"category_id"`
	LocationType      string    `json:"location_type"`
	CityID            *string   `json:"city_id"`
	Price             *string   `json:"price"`
	PaymentPeriod     string    `json:"payment_period"`
	Status            string    `json:"status"`
	IsActive          bool      `json:"is_active"`
	IsModerated       bool      `json:"is_moderated"`
	ModerationComment string    `json:"moderation_comment,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TaskListResponse represents the response for GET /tasks.
type TaskListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// TaskResponseInfo represents a candidate response in API responses.
type TaskResponseInfo struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	CandidateID string    `json:"candidate_id"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReviewResponse represents a review in API responses.
type ReviewResponse struct {
	ID             string    `json:"id"`
	TaskID         string    `json:"task_id"`
	ReviewerID     string    `json:"reviewer_id"`
	ReviewedUserID string    `json:"reviewed_user_id"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReviewListResponse represents the reviews of a user with the aggregate.
type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	Count         int              `json:"count"`
}

// MessageResponse represents a thread message in API responses.
type MessageResponse struct {
	ID         string    `json:"id"`
	ResponseID string    `json:"response_id"`
	SenderID   string    `json:"sender_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ServiceMessageResponse represents a service message in API responses.
type ServiceMessageResponse struct {
	ID          string    `json:"id"`
	ServiceID   string    `json:"service_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceResponse represents a service offering in API responses.
type ServiceResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	AuthorID          string    `json:"author_id"`
	CategoryID        string    `json:"category_id"`
	LocationType      string    `json:"location_type"`
	CityID            *string   `json:"city_id"`
	Price             *string   `json:"price"`
	PaymentPeriod     string    `json:"payment_period"`
	IsActive          bool      `json:"is_active"`
	IsModerated       bool      `json:"is_moderated"`
	ModerationComment string    `json:"moderation_comment,omitempty"`
	Views             int       `json:"views"`
	OrdersCount       int       `json:"orders_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ServiceListResponse represents the response for GET /services.
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// VacancyResponse represents a vacancy in API responses.
type VacancyResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	AuthorID          string    `json:"author_id"`
	SpecialtyID       string    `json:"specialty_id"`
	Experience        string    `json:"experience"`
	EmploymentType    string    `json:"employment_type"`
	WorkNature        string    `json:"work_nature"`
	OtherConditions   string    `json:"other_conditions"`
	Salary            string    `json:"salary"`
	Location          string    `json:"location"`
	CityID            *string   `json:"city_id"`
	IsActive          bool      `json:"is_active"`
	IsModerated       bool      `json:"is_moderated"`
	ModerationComment string    `json:"moderation_comment,omitempty"`
	Views             int       `json:"views"`
	ResponsesCount    int       `json:"responses_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// VacancyListResponse represents the response for GET /vacancies.
type VacancyListResponse struct {
	Vacancies []VacancyResponse `json:"vacancies"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// VacancyApplicationResponse represents a vacancy application.
type VacancyApplicationResponse struct {
	ID          string    `json:"id"`
	VacancyID   string    `json:"vacancy_id"`
	CandidateID string    `json:"candidate_id"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// SpecialtyResponse represents a specialty in API responses.
type SpecialtyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// SectionResponse represents a category section.
type SectionResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
}

// CategoryResponse represents a category.
type CategoryResponse struct {
	ID               string `json:"id"`
	SectionID        string `json:"section_id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
}

// RegionResponse represents a region.
type RegionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CityResponse represents a city.
type CityResponse struct {
	ID       string `json:"id"`
	RegionID string `json:"region_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// WarningResponse represents a disciplinary warning.
type WarningResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	IssuedByID string    `json:"issued_by_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// BanResponse represents a ban.
type BanResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	IssuedByID  string     `json:"issued_by_id"`
	Reason      string     `json:"reason"`
	IsPermanent bool       `json:"is_permanent"`
	BannedUntil *time.Time `json:"banned_until"`
	IsRevoked   bool       `json:"is_revoked"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ComplaintResponse represents a user complaint.
type ComplaintResponse struct {
	ID             string    `json:"id"`
	ComplainantID  string    `json:"complainant_id"`
	AccusedID      string    `json:"accused_id"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	ResolutionNote string    `json:"resolution_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ArticleResponse represents a blog article.
type ArticleResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body"`
	AuthorID    string     `json:"author_id"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ArticleListResponse represents the response for GET /articles.
type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// SiteStatsResponse represents overall marketplace statistics.
type SiteStatsResponse struct {
	TasksByStatus     map[string]int `json:"tasks_by_status"`
	OpenTasks         int            `json:"open_tasks"`
	PendingModeration int            `json:"pending_moderation"`
	RegisteredUsers   int            `json:"registered_users"`
}

// ToUserResponse converts a domain.User to UserResponse. When private is
// false the email and phone are stripped.
func ToUserResponse(user *domain.User, private bool) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
	}
	if private {
		resp.Email = user.Email
		resp.Phone = user.Phone
	}
	return resp
}

// ToUserStats converts a repository stats result.
func ToUserStats(stats *repository.UserStatsResult) UserStats {
	return UserStats{
		TasksPosted:     stats.TasksPosted,
		TasksCompleted:  stats.TasksCompleted,
		ServicesOffered: stats.ServicesOffered,
		ReviewsReceived: stats.ReviewsReceived,
		AverageRating:   stats.AverageRating,
	}
}

// ToTaskResponse converts a domain.Task. The moderation comment is only
// meaningful to the author and staff; the handler decides what to expose
// by what it fetched.
func ToTaskResponse(task *domain.Task) TaskResponse {
	var price *string
	if task.Price != nil {
		s := task.Price.String()
		price = &s
	}
	return TaskResponse{
		ID:                task.ID,
		Title:             task.Title,
		Slug:              task.Slug,
		Description:       task.Description,
		AuthorID:          task.AuthorID,
		CategoryID:        task.CategoryID,
		LocationType:      string(task.LocationType),
		CityID:            task.CityID,
		Price:             price,
		PaymentPeriod:     string(task.PaymentPeriod),
		Status:            string(task.Status),
		IsActive:          task.IsActive,
		IsModerated:       task.IsModerated,
		ModerationComment: task.ModerationComment,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}
}

// ToTaskListResponse converts a page of tasks.
func ToTaskListResponse(tasks []*domain.Task, total, limit, offset int) TaskListResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, ToTaskResponse(task))
	}
	return TaskListResponse{Tasks: out, Total: total, Limit: limit, Offset: offset}
}

// ToTaskResponseInfo converts a domain.TaskResponse.
func ToTaskResponseInfo(resp *domain.TaskResponse) TaskResponseInfo {
	return TaskResponseInfo{
		ID:          resp.ID,
		TaskID:      resp.TaskID,
		CandidateID: resp.CandidateID,
		Message:     resp.Message,
		Status:      string(resp.Status),
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
	}
}

// ToReviewResponse converts a domain.Review.
func ToReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:             review.ID,
		TaskID:         review.TaskID,
		ReviewerID:     review.ReviewerID,
		ReviewedUserID: review.ReviewedUserID,
		Rating:         review.Rating,
		Comment:        review.Comment,
		CreatedAt:      review.CreatedAt,
	}
}

// ToMessageResponse converts a domain.Message.
func ToMessageResponse(msg *domain.Message) MessageResponse {
	return MessageResponse{
		ID:         msg.ID,
		ResponseID: msg.ResponseID,
		SenderID:   msg.SenderID,
		Content:    msg.Content,
		IsRead:     msg.IsRead,
		CreatedAt:  msg.CreatedAt,
	}
}

// ToServiceMessageResponse converts a domain.ServiceMessage.
func ToServiceMessageResponse(msg *domain.ServiceMessage) ServiceMessageResponse {
	return ServiceMessageResponse{
		ID:          msg.ID,
		ServiceID:   msg.ServiceID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Content:     msg.Content,
		IsRead:      msg.IsRead,
		CreatedAt:   msg.CreatedAt,
	}
}

// ToServiceResponse converts a domain.Service.
func ToServiceResponse(svc *domain.Service) ServiceResponse {
	var price *string
	if svc.Price != nil {
		s := svc.Price.String()
		price = &s
	}
	return ServiceResponse{
		ID:                svc.ID,
		Title:             svc.Title,
		Slug:              svc.Slug,
		Description:       svc.Description,
		AuthorID:          svc.AuthorID,
		CategoryID:        svc.CategoryID,
		LocationType:      string(svc.LocationType),
		CityID:            svc.CityID,
		Price:             price,
		PaymentPeriod:     string(svc.PaymentPeriod),
		IsActive:          svc.IsActive,
		IsModerated:       svc.IsModerated,
		ModerationComment: svc.ModerationComment,
		Views:             svc.Views,
		OrdersCount:       svc.OrdersCount,
		CreatedAt:         svc.CreatedAt,
		UpdatedAt:         svc.UpdatedAt,
	}
}

// ToServiceListResponse converts a page of services.
func ToServiceListResponse(services []*domain.Service, total, limit, offset int) ServiceListResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, ToServiceResponse(svc))
	}
	return ServiceListResponse{Services: out, Total: total, Limit: limit, Offset: offset}
}

// ToVacancyResponse converts a domain.Vacancy.
func ToVacancyResponse(vac *domain.Vacancy) VacancyResponse {
	return VacancyResponse{
		ID:                vac.ID,
		Title:             vac.Title,
		Slug:              vac.Slug,
		Description:       vac.Description,
		AuthorID:          vac.AuthorID,
		SpecialtyID:       vac.SpecialtyID,
		Experience:        string(vac.Experience),
		EmploymentType:    string(vac.EmploymentType),
		WorkNature:        string(vac.WorkNature),
		OtherConditions:   vac.OtherConditions,
		Salary:            vac.Salary.String(),
		Location:          vac.Location,
		CityID:            vac.CityID,
		IsActive:          vac.IsActive,
		IsModerated:       vac.IsModerated,
		ModerationComment: vac.ModerationComment,
		Views:             vac.Views,
		ResponsesCount:    vac.ResponsesCount,
		CreatedAt:         vac.CreatedAt,
		UpdatedAt:         vac.UpdatedAt,
	}
}

// ToVacancyListResponse converts a page of vacancies.
func ToVacancyListResponse(vacancies []*domain.Vacancy, total, limit, offset int) VacancyListResponse {
	out := make([]VacancyResponse, 0, len(vacancies))
	for _, vac := range vacancies {
		out = append(out, ToVacancyResponse(vac))
	}
	return VacancyListResponse{Vacancies: out, Total: total, Limit: limit, Offset: offset}
}

// ToVacancyApplicationResponse converts a domain.VacancyResponse.
func ToVacancyApplicationResponse(resp *domain.VacancyResponse) VacancyApplicationResponse {
	return VacancyApplicationResponse{
		ID:          resp.ID,
		VacancyID:   resp.VacancyID,
		CandidateID: resp.CandidateID,
		Message:     resp.Message,
		IsRead:      resp.IsRead,
		CreatedAt:   resp.CreatedAt,
	}
}

// ToSpecialtyResponse converts a domain.Specialty.
func ToSpecialtyResponse(sp *domain.Specialty) SpecialtyResponse {
	return SpecialtyResponse{
		ID:          sp.ID,
		Name:        sp.Name,
		Slug:        sp.Slug,
		Description: sp.Description,
	}
}

// ToSectionResponse converts a domain.CategorySection.
func ToSectionResponse(s *domain.CategorySection) SectionResponse {
	return SectionResponse{
		ID:               s.ID,
		Name:             s.Name,
		Slug:             s.Slug,
		Description:      s.Description,
		ShortDescription: s.ShortDescription,
	}
}

// ToCategoryResponse converts a domain.Category.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:               c.ID,
		SectionID:        c.SectionID,
		Name:             c.Name,
		Slug:             c.Slug,
		Description:      c.Description,
		ShortDescription: c.ShortDescription,
	}
}

// ToRegionResponse converts a domain.Region.
func ToRegionResponse(reg *domain.Region) RegionResponse {
	return RegionResponse{ID: reg.ID, Name: reg.Name, Slug: reg.Slug}
}

// ToCityResponse converts a domain.City.
func ToCityResponse(city *domain.City) CityResponse {
	return CityResponse{ID: city.ID, RegionID: city.RegionID, Name: city.Name, Slug: city.Slug}
}

// ToWarningResponse converts a domain.UserWarning.
func ToWarningResponse(w *domain.UserWarning) WarningResponse {
	return WarningResponse{
		ID:         w.ID,
		UserID:     w.UserID,
		IssuedByID: w.IssuedByID,
		Reason:     w.Reason,
		CreatedAt:  w.CreatedAt,
	}
}

// ToBanResponse converts a domain.UserBan.
func ToBanResponse(b *domain.UserBan) BanResponse {
	return BanResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		IssuedByID:  b.IssuedByID,
		Reason:      b.Reason,
		IsPermanent: b.IsPermanent,
		BannedUntil: b.BannedUntil,
		IsRevoked:   b.IsRevoked,
		CreatedAt:   b.CreatedAt,
	}
}

// ToComplaintResponse converts a domain.UserComplaint.
func ToComplaintResponse(c *domain.UserComplaint) ComplaintResponse {
	return ComplaintResponse{
		ID:             c.ID,
		ComplainantID:  c.ComplainantID,
		AccusedID:      c.AccusedID,
		Reason:         c.Reason,
		Status:         string(c.Status),
		ResolutionNote: c.ResolutionNote,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToArticleResponse converts a domain.Article.
func ToArticleResponse(art *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:          art.ID,
		Title:       art.Title,
		Slug:        art.Slug,
		Body:        art.Body,
		AuthorID:    art.AuthorID,
		IsPublished: art.IsPublished,
		PublishedAt: art.PublishedAt,
		CreatedAt:   art.CreatedAt,
	}
}
