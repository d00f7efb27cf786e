package dto

// RegisterRequest represents the request body for POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// LoginRequest represents the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents the request body for PATCH /users/me.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

// TaskRequest represents the request body for POST /tasks and PUT /tasks/:id.
type TaskRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	CategoryID    string  `json:"category_id"`
	LocationType  string  `json:"location_type"`
	CityID        *string `json:"city_id,omitempty"`
	Price         *string `json:"price,omitempty"`
	PaymentPeriod string  `json:"payment_period"`
}

// CreateResponseRequest represents the request body for POST /tasks/:id/responses.
type CreateResponseRequest struct {
	Message string `json:"message"`
}

// DecideResponseRequest represents the request body for PATCH /responses/:id.
type DecideResponseRequest struct {
	Status string `json:"status"`
}

// CreateReviewRequest represents the request body for POST /tasks/:id/reviews.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// MessageRequest represents the request body for sending a thread message.
type MessageRequest struct {
	Content string `json:"content"`
}

// ServiceMessageRequest represents the request body for POST /services/:id/messages.
type ServiceMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

// ServiceRequest represents the request body for POST /services and PUT /services/:id.
type ServiceRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	CategoryID    string  `json:"category_id"`
	LocationType  string  `json:"location_type"`
	CityID        *string `json:"city_id,omitempty"`
	Price         *string `json:"price,omitempty"`
	PaymentPeriod string  `json:"payment_period"`
}

// VacancyRequest represents the request body for POST /vacancies and PUT /vacancies/:id.
type VacancyRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	SpecialtyID     string  `json:"specialty_id"`
	Experience      string  `json:"experience"`
	EmploymentType  string  `json:"employment_type"`
	WorkNature      string  `json:"work_nature"`
	OtherConditions string  `json:"other_conditions,omitempty"`
	Salary          string  `json:"salary"`
	Location        string  `json:"location,omitempty"`
	CityID          *string `json:"city_id,omitempty"`
}

// VacancyApplyRequest represents the request body for POST /vacancies/:id/responses.
type VacancyApplyRequest struct {
	Message string `json:"message"`
}

// ModerateRequest represents the request body for moderation decisions.
type ModerateRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment,omitempty"`
}

// WarnRequest represents the request body for POST /moderation/users/:id/warnings.
type WarnRequest struct {
	Reason string `json:"reason"`
}

// BanRequest represents the request body for POST /moderation/users/:id/bans.
// A missing banned_until makes the ban permanent.
type BanRequest struct {
	Reason      string  `json:"reason"`
	BannedUntil *string `json:"banned_until,omitempty"`
}

// ComplaintRequest represents the request body for POST /complaints.
type ComplaintRequest struct {
	AccusedID string `json:"accused_id"`
	Reason    string `json:"reason"`
}

// ResolveComplaintRequest represents the request body for PATCH /moderation/complaints/:id.
type ResolveComplaintRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// ArticleRequest represents the request body for POST /articles.
type ArticleRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
