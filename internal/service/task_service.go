package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/repository"
)

// TaskService coordinates task operations and state transitions.
type TaskService struct {
	pool         *pgxpool.Pool
	taskRepo     *repository.TaskRepository
	responseRepo *repository.ResponseRepository
	reviewRepo   *repository.ReviewRepository
	taxonomyRepo *repository.TaxonomyRepository
	validator    *Validator
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	responseRepo *repository.ResponseRepository,
	reviewRepo *repository.ReviewRepository,
	taxonomyRepo *repository.TaxonomyRepository,
) *TaskService {
	return &TaskService{
		pool:         pool,
		taskRepo:     taskRepo,
		responseRepo: responseRepo,
		reviewRepo:   reviewRepo,
		taxonomyRepo: taxonomyRepo,
		validator:    NewValidator(),
	}
}

// TaskInput carries the author-editable fields of a task.
type TaskInput struct {
	Title         string
	Description   string
	CategoryID    string
	LocationType  domain.LocationType
	CityID        *string
	Price         *decimal.Decimal
	PaymentPeriod domain.PaymentPeriod
}

func (s *TaskService) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
		slog.Error("failed to rollback transaction", "error", err)
	}
}

// checkTaskInput validates the field-level rules shared by create and edit.
func (s *TaskService) checkTaskInput(ctx context.Context, in TaskInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if !in.LocationType.IsValid() {
		return fmt.Errorf("%w: unknown location type %q", domain.ErrValidation, in.LocationType)
	}
	if !in.PaymentPeriod.IsValid() {
		return fmt.Errorf("%w: unknown payment period %q", domain.ErrValidation, in.PaymentPeriod)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}

	if _, err := s.taxonomyRepo.GetCategoryByID(ctx, in.CategoryID); err != nil {
		return err
	}
	if in.CityID != nil {
		if _, err := s.taxonomyRepo.GetCityByID(ctx, *in.CityID); err != nil {
			return err
		}
	}
	return nil
}

// CreateTask posts a new task. It starts open, active and unmoderated, so
// it stays hidden from listings until a moderator approves it.
func (s *TaskService) CreateTask(ctx context.Context, actor domain.Actor, in TaskInput) (*domain.Task, error) {
	if err := s.checkTaskInput(ctx, in); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:         in.Title,
		Description:   in.Description,
		AuthorID:      actor.ID,
		CategoryID:    in.CategoryID,
		LocationType:  in.LocationType,
		CityID:        in.CityID,
		Price:         in.Price,
		PaymentPeriod: in.PaymentPeriod,
		Status:        domain.TaskStatusOpen,
		IsActive:      true,
		IsModerated:   false,
	}
	if err := task.ValidateLocation(); err != nil {
		return nil, err
	}

	taskSlug, err := uniqueSlug(ctx, in.Title, s.taskRepo.SlugExists)
	if err != nil {
		return nil, err
	}
	task.Slug = taskSlug

	task, err = s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	slog.Info("task created",
		"task_id", task.ID,
		"author_id", actor.ID,
		"slug", task.Slug,
	)

	return task, nil
}

// EditTask updates an open task. Any edit resets the moderation flag, so
// the task goes back through the moderation queue.
func (s *TaskService) EditTask(ctx context.Context, actor domain.Actor, taskID string, in TaskInput) (*domain.Task, error) {
	// The row stays locked from the check to the write so a concurrent
	// accept cannot land an edit on a task that just left the open status.
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanEditTask(task, actor); err != nil {
		return nil, err
	}
	if err := s.checkTaskInput(ctx, in); err != nil {
		return nil, err
	}

	task.Title = in.Title
	task.Description = in.Description
	task.CategoryID = in.CategoryID
	task.LocationType = in.LocationType
	task.CityID = in.CityID
	task.Price = in.Price
	task.PaymentPeriod = in.PaymentPeriod
	task.IsModerated = false

	if err := task.ValidateLocation(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, tx, task); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("task edited",
		"task_id", task.ID,
		"author_id", actor.ID,
	)

	return task, nil
}

// GetTask retrieves a task by slug with the visibility rules applied.
func (s *TaskService) GetTask(ctx context.Context, actor domain.Actor, taskSlug string) (*domain.Task, error) {
	task, err := s.taskRepo.GetBySlug(ctx, taskSlug)
	if err != nil {
		return nil, err
	}

	executorID, err := s.executorID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanViewTask(task, executorID, actor); err != nil {
		return nil, err
	}

	return task, nil
}

// executorID resolves the accepted candidate of a task, nil if none.
func (s *TaskService) executorID(ctx context.Context, taskID string) (*string, error) {
	accepted, err := s.responseRepo.GetAccepted(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrResponseNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &accepted.CandidateID, nil
}

// ListTasks retrieves the public task listing.
func (s *TaskService) ListTasks(ctx context.Context, filters repository.TaskListFilters) ([]*domain.Task, int, error) {
	return s.taskRepo.List(ctx, filters)
}

// ListOwnTasks retrieves all tasks posted by the actor, any status.
func (s *TaskService) ListOwnTasks(ctx context.Context, actor domain.Actor) ([]*domain.Task, error) {
	return s.taskRepo.ListByAuthor(ctx, actor.ID)
}

// CreateResponse lets a candidate apply to an open task. If the candidate
// already responded, the existing response is returned unchanged and
// created is false.
func (s *TaskService) CreateResponse(
	ctx context.Context,
	actor domain.Actor,
	taskID string,
	message string,
) (resp *domain.TaskResponse, created bool, err error) {
	if message == "" {
		return nil, false, domain.ErrEmptyMessage
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, false, err
	}

	if err := s.validator.CanRespond(task, actor); err != nil {
		return nil, false, err
	}

	existing, err := s.responseRepo.GetByTaskAndCandidate(ctx, taskID, actor.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrResponseNotFound) {
		return nil, false, err
	}

	resp = &domain.TaskResponse{
		TaskID:      taskID,
		CandidateID: actor.ID,
		Message:     message,
		Status:      domain.ResponseStatusPending,
	}
	resp, err = s.responseRepo.Create(ctx, resp)
	if err != nil {
		// Lost a race against our own duplicate; hand back the winner.
		if errors.Is(err, domain.ErrValidation) {
			existing, getErr := s.responseRepo.GetByTaskAndCandidate(ctx, taskID, actor.ID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	slog.Info("response created",
		"response_id", resp.ID,
		"task_id", taskID,
		"candidate_id", actor.ID,
	)

	return resp, true, nil
}

// ListResponses retrieves the responses on a task. The author and staff
// see all of them; a candidate sees only their own.
func (s *TaskService) ListResponses(ctx context.Context, actor domain.Actor, taskID string) ([]*domain.TaskResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.IsAuthoredBy(actor.ID) || actor.IsStaff {
		return s.responseRepo.ListByTask(ctx, taskID)
	}

	own, err := s.responseRepo.GetByTaskAndCandidate(ctx, taskID, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrResponseNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []*domain.TaskResponse{own}, nil
}

// DecideResponse applies the author's accept or reject decision.
// Accepting moves the task from open to in progress and makes the
// candidate the executor; the transaction and the partial unique index
// both guarantee a task never gains a second accepted response.
func (s *TaskService) DecideResponse(
	ctx context.Context,
	actor domain.Actor,
	responseID string,
	decision domain.ResponseStatus,
) (*domain.TaskResponse, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	resp, err := s.responseRepo.GetByIDForUpdate(ctx, tx, responseID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, resp.TaskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanDecideResponse(task, resp, actor, decision); err != nil {
		return nil, err
	}

	if decision == domain.ResponseStatusAccepted {
		newStatus, ok := task.Status.Transition(domain.TaskActionAcceptResponse)
		if !ok {
			return nil, fmt.Errorf("%w: task %s is in %s status", domain.ErrInvalidTransition, task.ID, task.Status)
		}

		count, err := s.responseRepo.CountAcceptedForTask(ctx, tx, task.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: task %s", domain.ErrExecutorAssigned, task.ID)
		}

		if err := s.responseRepo.UpdateStatus(ctx, tx, responseID, domain.ResponseStatusPending, decision); err != nil {
			return nil, err
		}
		if err := s.taskRepo.UpdateStatus(ctx, tx, task.ID, task.Status, newStatus); err != nil {
			return nil, err
		}
	} else {
		if err := s.responseRepo.UpdateStatus(ctx, tx, responseID, domain.ResponseStatusPending, decision); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	resp.Status = decision

	slog.Info("response decided",
		"response_id", responseID,
		"task_id", task.ID,
		"author_id", actor.ID,
		"decision", decision,
	)

	return resp, nil
}

// WithdrawResponse lets a candidate pull back a pending response.
func (s *TaskService) WithdrawResponse(ctx context.Context, actor domain.Actor, responseID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	resp, err := s.responseRepo.GetByIDForUpdate(ctx, tx, responseID)
	if err != nil {
		return err
	}

	if err := s.validator.CanWithdrawResponse(resp, actor); err != nil {
		return err
	}

	if err := s.responseRepo.UpdateStatus(ctx, tx, responseID,
		domain.ResponseStatusPending, domain.ResponseStatusWithdrawn); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("response withdrawn",
		"response_id", responseID,
		"candidate_id", actor.ID,
	)

	return nil
}

// CompleteTask is the executor requesting completion confirmation, moving
// the task from in progress to awaiting confirmation.
func (s *TaskService) CompleteTask(ctx context.Context, actor domain.Actor, taskID string) (*domain.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	newStatus, ok := task.Status.Transition(domain.TaskActionComplete)
	if !ok {
		return nil, fmt.Errorf("%w: task %s is in %s status", domain.ErrInvalidTransition, task.ID, task.Status)
	}

	accepted, err := s.responseRepo.GetAccepted(ctx, taskID)
	if err != nil && !errors.Is(err, domain.ErrResponseNotFound) {
		return nil, err
	}
	if err := s.validator.CanComplete(task, accepted, actor); err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateStatus(ctx, tx, taskID, task.Status, newStatus); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	task.Status = newStatus

	slog.Info("task completion requested",
		"task_id", taskID,
		"executor_id", actor.ID,
	)

	return task, nil
}

// ConfirmCompletion is the author accepting the completed work, moving
// the task from awaiting confirmation to completed.
func (s *TaskService) ConfirmCompletion(ctx context.Context, actor domain.Actor, taskID string) (*domain.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanConfirm(task, actor); err != nil {
		return nil, err
	}

	newStatus, ok := task.Status.Transition(domain.TaskActionAcceptCompletion)
	if !ok {
		return nil, fmt.Errorf("%w: task %s is in %s status", domain.ErrInvalidTransition, task.ID, task.Status)
	}

	if err := s.taskRepo.UpdateStatus(ctx, tx, taskID, task.Status, newStatus); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	task.Status = newStatus

	slog.Info("task completed",
		"task_id", taskID,
		"author_id", actor.ID,
	)

	return task, nil
}

// CreateReview records a rating on a completed task. If the actor already
// reviewed this task the existing review is returned unchanged and
// created is false.
func (s *TaskService) CreateReview(
	ctx context.Context,
	actor domain.Actor,
	taskID string,
	rating int,
	comment string,
) (review *domain.Review, created bool, err error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, false, err
	}

	executorID, err := s.executorID(ctx, taskID)
	if err != nil {
		return nil, false, err
	}

	revieweeID, err := s.validator.CanReview(task, executorID, actor, rating)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.reviewRepo.GetByTaskAndReviewer(ctx, taskID, actor.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrReviewNotFound) {
		return nil, false, err
	}

	review = &domain.Review{
		TaskID:         taskID,
		ReviewerID:     actor.ID,
		ReviewedUserID: revieweeID,
		Rating:         rating,
		Comment:        comment,
	}
	review, err = s.reviewRepo.Create(ctx, review)
	if err != nil {
		if errors.Is(err, domain.ErrReviewExists) {
			existing, getErr := s.reviewRepo.GetByTaskAndReviewer(ctx, taskID, actor.ID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	slog.Info("review created",
		"review_id", review.ID,
		"task_id", taskID,
		"reviewer_id", actor.ID,
		"rating", rating,
	)

	return review, true, nil
}

// ListUserReviews retrieves the reviews received by a user together with
// the aggregate rating.
func (s *TaskService) ListUserReviews(ctx context.Context, userID string) ([]*domain.Review, float64, int, error) {
	reviews, err := s.reviewRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, count, err := s.reviewRepo.AverageRating(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, avg, count, nil
}
