package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/podryad/podryad/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Not found
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", message
	case errors.Is(err, domain.ErrResponseNotFound):
		return http.StatusNotFound, "RESPONSE_NOT_FOUND", message
	case errors.Is(err, domain.ErrReviewNotFound):
		return http.StatusNotFound, "REVIEW_NOT_FOUND", message
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "USER_NOT_FOUND", message
	case errors.Is(err, domain.ErrServiceNotFound):
		return http.StatusNotFound, "SERVICE_NOT_FOUND", message
	case errors.Is(err, domain.ErrVacancyNotFound):
		return http.StatusNotFound, "VACANCY_NOT_FOUND", message
	case errors.Is(err, domain.ErrArticleNotFound):
		return http.StatusNotFound, "ARTICLE_NOT_FOUND", message
	case errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound, "MESSAGE_NOT_FOUND", message
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, "CATEGORY_NOT_FOUND", message
	case errors.Is(err, domain.ErrSectionNotFound):
		return http.StatusNotFound, "SECTION_NOT_FOUND", message
	case errors.Is(err, domain.ErrRegionNotFound):
		return http.StatusNotFound, "REGION_NOT_FOUND", message
	case errors.Is(err, domain.ErrCityNotFound):
		return http.StatusNotFound, "CITY_NOT_FOUND", message
	case errors.Is(err, domain.ErrSpecialtyNotFound):
		return http.StatusNotFound, "SPECIALTY_NOT_FOUND", message
	case errors.Is(err, domain.ErrComplaintNotFound):
		return http.StatusNotFound, "COMPLAINT_NOT_FOUND", message
	case errors.Is(err, domain.ErrBanNotFound):
		return http.StatusNotFound, "BAN_NOT_FOUND", message

	// Authentication
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "AUTHENTICATION_REQUIRED", message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", message

	// Permissions
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message
	case errors.Is(err, domain.ErrNotTaskAuthor):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message
	case errors.Is(err, domain.ErrNotExecutor):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message
	case errors.Is(err, domain.ErrOwnTask):
		return http.StatusForbidden, "OWN_TASK", message
	case errors.Is(err, domain.ErrNotThreadMember):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message
	case errors.Is(err, domain.ErrUserBanned):
		return http.StatusForbidden, "ACCOUNT_BANNED", message

	// State conflicts
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", message
	case errors.Is(err, domain.ErrExecutorAssigned):
		return http.StatusConflict, "EXECUTOR_ASSIGNED", message
	case errors.Is(err, domain.ErrTaskModified):
		return http.StatusConflict, "TASK_MODIFIED", message
	case errors.Is(err, domain.ErrTaskLocked):
		return http.StatusConflict, "TASK_LOCKED", message
	case errors.Is(err, domain.ErrTaskNotModerated):
		return http.StatusConflict, "TASK_NOT_MODERATED", message
	case errors.Is(err, domain.ErrTaskInactive):
		return http.StatusConflict, "TASK_INACTIVE", message
	case errors.Is(err, domain.ErrTaskNotCompleted):
		return http.StatusConflict, "TASK_NOT_COMPLETED", message
	case errors.Is(err, domain.ErrReviewExists):
		return http.StatusConflict, "REVIEW_EXISTS", message
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, "USERNAME_TAKEN", message
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "EMAIL_TAKEN", message

	// Validation
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidResponseStatus):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidRating):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidReviewee):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrCityRequired):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrCityForbidden):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrCityRegionMismatch):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrSectionMismatch):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrSelfMessage):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
