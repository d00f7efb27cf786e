package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskLocked        = errors.New("task can no longer be edited")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTaskModified      = errors.New("task was modified concurrently")
	ErrTaskNotModerated  = errors.New("task is awaiting moderation")
	ErrTaskInactive      = errors.New("task is not active")

	// Response errors
	ErrResponseNotFound      = errors.New("response not found")
	ErrOwnTask               = errors.New("cannot respond to own task")
	ErrExecutorAssigned      = errors.New("task already has an accepted response")
	ErrInvalidResponseStatus = errors.New("invalid response status")

	// Review errors
	ErrReviewNotFound   = errors.New("review not found")
	ErrReviewExists     = errors.New("review already left for this task")
	ErrTaskNotCompleted = errors.New("task is not completed")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidReviewee  = errors.New("reviewed user is not a party of this task")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotTaskAuthor    = errors.New("not task author")
	ErrNotExecutor      = errors.New("not the accepted candidate")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrUserBanned       = errors.New("account is banned")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid authentication token")

	// Catalog errors
	ErrServiceNotFound = errors.New("service not found")
	ErrVacancyNotFound = errors.New("vacancy not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrSelfMessage     = errors.New("cannot send a message to yourself")
	ErrNotThreadMember = errors.New("not a participant of this thread")

	// Taxonomy errors
	ErrCategoryNotFound   = errors.New("category not found")
	ErrSectionNotFound    = errors.New("category section not found")
	ErrRegionNotFound     = errors.New("region not found")
	ErrCityNotFound       = errors.New("city not found")
	ErrSpecialtyNotFound  = errors.New("specialty not found")
	ErrCityRegionMismatch = errors.New("city does not belong to the selected region")
	ErrSectionMismatch    = errors.New("category does not belong to the selected section")

	// Moderation errors
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrBanNotFound       = errors.New("active ban not found")

	// Validation errors
	ErrCityRequired  = errors.New("city is required for this location type")
	ErrCityForbidden = errors.New("city must be empty for remote work")
	ErrEmptyMessage  = errors.New("message text is required")
	ErrValidation    = errors.New("validation error")
)
