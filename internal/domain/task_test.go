package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podryad/podryad/internal/domain"
)

// TestTaskTransitionTable exercises the full from-status x action matrix.
// The table is the single oracle for transition legality, so the test
// enumerates every combination rather than sampling.
func TestTaskTransitionTable(t *testing.T) {
	statuses := []domain.TaskStatus{
		domain.TaskStatusOpen,
		domain.TaskStatusInProgress,
		domain.TaskStatusAwaitingConfirmation,
		domain.TaskStatusCompleted,
		domain.TaskStatusClosed,
	}
	actions := []domain.TaskAction{
		domain.TaskActionAcceptResponse,
		domain.TaskActionComplete,
		domain.TaskActionAcceptCompletion,
		domain.TaskActionEdit,
	}

	allowed := map[domain.TaskStatus]map[domain.TaskAction]domain.TaskStatus{
		domain.TaskStatusOpen: {
			domain.TaskActionAcceptResponse: domain.TaskStatusInProgress,
			domain.TaskActionEdit:           domain.TaskStatusOpen,
		},
		domain.TaskStatusInProgress: {
			domain.TaskActionComplete: domain.TaskStatusAwaitingConfirmation,
		},
		domain.TaskStatusAwaitingConfirmation: {
			domain.TaskActionAcceptCompletion: domain.TaskStatusCompleted,
		},
	}

	for _, from := range statuses {
		for _, action := range actions {
			next, ok := from.Transition(action)
			want, wantOK := allowed[from][action]
			assert.Equal(t, wantOK, ok, "status %s action %s legality", from, action)
			if wantOK {
				assert.Equal(t, want, next, "status %s action %s result", from, action)
			}
		}
	}
}

func TestTaskTransitionMonotonic(t *testing.T) {
	// No action may ever produce open or in_progress from a later stage,
	// and terminal statuses admit no action at all.
	for _, from := range []domain.TaskStatus{
		domain.TaskStatusAwaitingConfirmation,
		domain.TaskStatusCompleted,
		domain.TaskStatusClosed,
	} {
		for _, action := range []domain.TaskAction{
			domain.TaskActionAcceptResponse,
			domain.TaskActionComplete,
			domain.TaskActionEdit,
		} {
			_, ok := from.Transition(action)
			assert.False(t, ok, "status %s must not admit action %s", from, action)
		}
	}
	require.True(t, domain.TaskStatusCompleted.IsTerminal())
	require.True(t, domain.TaskStatusClosed.IsTerminal())
}

func TestTaskClosedUnreachable(t *testing.T) {
	for _, from := range []domain.TaskStatus{
		domain.TaskStatusOpen,
		domain.TaskStatusInProgress,
		domain.TaskStatusAwaitingConfirmation,
		domain.TaskStatusCompleted,
	} {
		for _, action := range []domain.TaskAction{
			domain.TaskActionAcceptResponse,
			domain.TaskActionComplete,
			domain.TaskActionAcceptCompletion,
			domain.TaskActionEdit,
		} {
			next, ok := from.Transition(action)
			if ok {
				assert.NotEqual(t, domain.TaskStatusClosed, next)
			}
		}
	}
}

func TestTaskValidateLocation(t *testing.T) {
	city := "00000000-0000-0000-0000-000000000001"
	price := decimal.NewFromInt(1500)

	remote := &domain.Task{LocationType: domain.LocationTypeRemote, Price: &price}
	require.NoError(t, remote.ValidateLocation())

	remote.CityID = &city
	assert.ErrorIs(t, remote.ValidateLocation(), domain.ErrCityForbidden)

	onSite := &domain.Task{LocationType: domain.LocationTypeCustomer}
	assert.ErrorIs(t, onSite.ValidateLocation(), domain.ErrCityRequired)

	onSite.CityID = &city
	require.NoError(t, onSite.ValidateLocation())
}

func TestResponseStatusDecision(t *testing.T) {
	assert.True(t, domain.ResponseStatusAccepted.IsDecision())
	assert.True(t, domain.ResponseStatusRejected.IsDecision())
	assert.False(t, domain.ResponseStatusPending.IsDecision())
	assert.False(t, domain.ResponseStatusWithdrawn.IsDecision())
	assert.False(t, domain.ResponseStatus("approved").IsValid())
}

func TestTaskIsListed(t *testing.T) {
	task := &domain.Task{Status: domain.TaskStatusOpen, IsActive: true, IsModerated: true}
	assert.True(t, task.IsListed())

	task.IsModerated = false
	assert.False(t, task.IsListed())

	task.IsModerated = true
	task.Status = domain.TaskStatusInProgress
	assert.False(t, task.IsListed())
}
