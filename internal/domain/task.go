package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus represents the lifecycle status of a task.
type TaskStatus string

const (
	TaskStatusOpen                 TaskStatus = "open"
	TaskStatusInProgress           TaskStatus = "in_progress"
	TaskStatusAwaitingConfirmation TaskStatus = "awaiting_confirmation"
	TaskStatusCompleted            TaskStatus = "completed"
	// TaskStatusClosed is reserved for administrative use. No lifecycle
	// action produces it and no transition leaves it.
	TaskStatusClosed TaskStatus = "closed"
)

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusAwaitingConfirmation,
		TaskStatusCompleted, TaskStatusClosed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no lifecycle action can leave the status.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusClosed
}

// TaskAction is a lifecycle action applied to a task.
type TaskAction string

const (
	// TaskActionAcceptResponse is the author accepting a candidate's response.
	TaskActionAcceptResponse TaskAction = "accept_response"
	// TaskActionComplete is the executor requesting completion confirmation.
	TaskActionComplete TaskAction = "complete"
	// TaskActionAcceptCompletion is the author confirming completed work.
	TaskActionAcceptCompletion TaskAction = "accept_completion"
	// TaskActionEdit is the author editing the task. It keeps the status.
	TaskActionEdit TaskAction = "edit"
)

// taskTransitions is the authoritative transition table: from-status and
// action to the resulting status. Progression is monotonic; nothing here
// ever moves a task backwards, and closed is unreachable.
var taskTransitions = map[TaskStatus]map[TaskAction]TaskStatus{
	TaskStatusOpen: {
		TaskActionAcceptResponse: TaskStatusInProgress,
		TaskActionEdit:           TaskStatusOpen,
	},
	TaskStatusInProgress: {
		TaskActionComplete: TaskStatusAwaitingConfirmation,
	},
	TaskStatusAwaitingConfirmation: {
		TaskActionAcceptCompletion: TaskStatusCompleted,
	},
}

// Transition returns the status resulting from applying action in status s,
// or false if the action is illegal in that status.
func (s TaskStatus) Transition(action TaskAction) (TaskStatus, bool) {
	next, ok := taskTransitions[s][action]
	return next, ok
}

// LocationType describes where a task is performed.
type LocationType string

const (
	LocationTypeSelf     LocationType = "self"
	LocationTypeRemote   LocationType = "remote"
	LocationTypeCustomer LocationType = "customer"
)

// IsValid checks if the location type is one of the allowed values.
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeSelf, LocationTypeRemote, LocationTypeCustomer:
		return true
	default:
		return false
	}
}

// RequiresCity reports whether the location type needs a city reference.
func (t LocationType) RequiresCity() bool {
	return t != LocationTypeRemote
}

// PaymentPeriod describes the unit the price applies to.
type PaymentPeriod string

const (
	PaymentPeriodFixed PaymentPeriod = "fixed"
	PaymentPeriodHour  PaymentPeriod = "hour"
	PaymentPeriodDay   PaymentPeriod = "day"
	PaymentPeriodMonth PaymentPeriod = "month"
)

// IsValid checks if the payment period is one of the allowed values.
func (p PaymentPeriod) IsValid() bool {
	switch p {
	case PaymentPeriodFixed, PaymentPeriodHour, PaymentPeriodDay, PaymentPeriodMonth:
		return true
	default:
		return false
	}
}

// Task is a unit of work posted by an author seeking a candidate.
type Task struct {
	ID                string
	Title             string
	Slug              string
	Description       string
	AuthorID          string
	CategoryID        string
	LocationType      LocationType
	CityID            *string
	Price             *decimal.Decimal
	PaymentPeriod     PaymentPeriod
	Status            TaskStatus
	IsActive          bool
	IsModerated       bool
	ModerationComment string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAuthoredBy checks if the task was posted by the given user.
func (t *Task) IsAuthoredBy(userID string) bool {
	return t.AuthorID == userID
}

// IsEditable reports whether the author may still change the task.
// Editing is allowed only while the task is open.
func (t *Task) IsEditable() bool {
	return t.Status == TaskStatusOpen
}

// IsListed reports whether the task appears in public listings.
func (t *Task) IsListed() bool {
	return t.IsActive && t.IsModerated && t.Status == TaskStatusOpen
}

// ValidateLocation enforces the city/location invariant:
// a city is set if and only if the work is not remote.
func (t *Task) ValidateLocation() error {
	if t.LocationType == LocationTypeRemote {
		if t.CityID != nil {
			return ErrCityForbidden
		}
		return nil
	}
	if t.CityID == nil {
		return ErrCityRequired
	}
	return nil
}
