package service

import (
	"fmt"

	"github.com/podryad/podryad/internal/domain"
)

// Validator handles permission and state validation for task operations.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// CanViewTask validates if an actor may see a task at all. Unmoderated
// and inactive tasks are reported as not found so their existence does
// not leak. executorID is the accepted candidate, nil while the task is
// open.
func (v *Validator) CanViewTask(task *domain.Task, executorID *string, actor domain.Actor) error {
	if actor.IsStaff || task.IsAuthoredBy(actor.ID) {
		return nil
	}

	if !task.IsActive || !task.IsModerated {
		return fmt.Errorf("%w: task %s is not visible", domain.ErrTaskNotFound, task.ID)
	}

	// Once a task leaves the open status only the parties keep access.
	// The task was publicly listed before, so access is denied rather
	// than hidden: anonymous visitors are asked to sign in first.
	if task.Status != domain.TaskStatusOpen {
		if executorID != nil && *executorID == actor.ID {
			return nil
		}
		if actor.IsAnonymous() {
			return fmt.Errorf("%w: task %s is restricted to its parties", domain.ErrUnauthenticated, task.ID)
		}
		return fmt.Errorf("%w: user %s is not a party of task %s", domain.ErrPermissionDenied, actor.ID, task.ID)
	}

	return nil
}

// CanEditTask validates if an actor may edit a task.
func (v *Validator) CanEditTask(task *domain.Task, actor domain.Actor) error {
	if !task.IsAuthoredBy(actor.ID) {
		return fmt.Errorf("%w: user %s is not the author of task %s", domain.ErrNotTaskAuthor, actor.ID, task.ID)
	}
	if !task.IsEditable() {
		return fmt.Errorf("%w: task %s is in %s status", domain.ErrTaskLocked, task.ID, task.Status)
	}
	return nil
}

// CanRespond validates if an actor may respond to a task.
func (v *Validator) CanRespond(task *domain.Task, actor domain.Actor) error {
	if task.IsAuthoredBy(actor.ID) {
		return fmt.Errorf("%w: user %s authored task %s", domain.ErrOwnTask, actor.ID, task.ID)
	}
	if !task.IsActive {
		return fmt.Errorf("%w: task %s", domain.ErrTaskInactive, task.ID)
	}
	if !task.IsModerated {
		return fmt.Errorf("%w: task %s", domain.ErrTaskNotModerated, task.ID)
	}
	if task.Status != domain.TaskStatusOpen {
		return fmt.Errorf("%w: task %s is in %s status, responses are accepted while open", domain.ErrInvalidTransition, task.ID, task.Status)
	}
	return nil
}

// CanDecideResponse validates the author's accept or reject decision on a
// pending response.
func (v *Validator) CanDecideResponse(
	task *domain.Task,
	resp *domain.TaskResponse,
	actor domain.Actor,
	decision domain.ResponseStatus,
) error {
	if !task.IsAuthoredBy(actor.ID) {
		return fmt.Errorf("%w: user %s is not the author of task %s", domain.ErrNotTaskAuthor, actor.ID, task.ID)
	}
	if !decision.IsDecision() {
		return fmt.Errorf("%w: %s is not a decision", domain.ErrInvalidResponseStatus, decision)
	}
	if resp.Status != domain.ResponseStatusPending {
		return fmt.Errorf("%w: response %s is %s, expected pending", domain.ErrInvalidResponseStatus, resp.ID, resp.Status)
	}
	return nil
}

// CanWithdrawResponse validates a candidate pulling back a pending response.
func (v *Validator) CanWithdrawResponse(resp *domain.TaskResponse, actor domain.Actor) error {
	if !resp.IsFrom(actor.ID) {
		return fmt.Errorf("%w: user %s did not send response %s", domain.ErrPermissionDenied, actor.ID, resp.ID)
	}
	if resp.Status != domain.ResponseStatusPending {
		return fmt.Errorf("%w: response %s is %s, expected pending", domain.ErrInvalidResponseStatus, resp.ID, resp.Status)
	}
	return nil
}

// CanComplete validates the executor requesting completion confirmation.
func (v *Validator) CanComplete(task *domain.Task, accepted *domain.TaskResponse, actor domain.Actor) error {
	if accepted == nil || !accepted.IsFrom(actor.ID) {
		return fmt.Errorf("%w: user %s is not the executor of task %s", domain.ErrNotExecutor, actor.ID, task.ID)
	}
	return nil
}

// CanConfirm validates the author confirming completed work.
func (v *Validator) CanConfirm(task *domain.Task, actor domain.Actor) error {
	if !task.IsAuthoredBy(actor.ID) {
		return fmt.Errorf("%w: user %s is not the author of task %s", domain.ErrNotTaskAuthor, actor.ID, task.ID)
	}
	return nil
}

// CanReview validates a review on a task and resolves the reviewed party.
// Only the author and the executor of a completed task may review, and
// each reviews the other.
func (v *Validator) CanReview(
	task *domain.Task,
	executorID *string,
	actor domain.Actor,
	rating int,
) (revieweeID string, err error) {
	if task.Status != domain.TaskStatusCompleted {
		return "", fmt.Errorf("%w: task %s is in %s status", domain.ErrTaskNotCompleted, task.ID, task.Status)
	}
	if !domain.ValidRating(rating) {
		return "", fmt.Errorf("%w: got %d", domain.ErrInvalidRating, rating)
	}
	if executorID == nil {
		return "", fmt.Errorf("%w: task %s has no executor", domain.ErrInvalidReviewee, task.ID)
	}

	switch actor.ID {
	case task.AuthorID:
		return *executorID, nil
	case *executorID:
		return task.AuthorID, nil
	default:
		return "", fmt.Errorf("%w: user %s is not a party of task %s", domain.ErrPermissionDenied, actor.ID, task.ID)
	}
}
