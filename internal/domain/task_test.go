package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/crewline/siteproof/internal/domain"
)

func TestTaskStatus_CanTransitionTo(t *testing.T) {
	allStatuses := []domain.TaskStatus{
		domain.TaskStatusPending,
		domain.TaskStatusInProgress,
		domain.TaskStatusCompleted,
		domain.TaskStatusApproved,
		domain.TaskStatusRejected,
	}

	allowed := map[domain.TaskStatus][]domain.TaskStatus{
		domain.TaskStatusPending:    {domain.TaskStatusInProgress},
		domain.TaskStatusInProgress: {domain.TaskStatusCompleted},
		domain.TaskStatusCompleted:  {domain.TaskStatusApproved, domain.TaskStatusRejected},
		domain.TaskStatusRejected:   {domain.TaskStatusInProgress},
		domain.TaskStatusApproved:   {},
	}

	for from, targets := range allowed {
		want := make(map[domain.TaskStatus]bool, len(targets))
		for _, to := range targets {
			want[to] = true
		}
		for _, to := range allStatuses {
			got := from.CanTransitionTo(to)
			assert.Equal(t, want[to], got, "%s -> %s", from, to)
		}
	}
}

func TestTaskStatus_Approved_IsTerminal(t *testing.T) {
	assert.True(t, domain.TaskStatusApproved.IsTerminal())
	assert.False(t, domain.TaskStatusRejected.IsTerminal())
	assert.False(t, domain.TaskStatusCompleted.IsTerminal())
	assert.False(t, domain.TaskStatusPending.IsTerminal())
	assert.False(t, domain.TaskStatusInProgress.IsTerminal())
}

func TestTaskStatus_RequiresReview(t *testing.T) {
	assert.True(t, domain.TaskStatusApproved.RequiresReview())
	assert.True(t, domain.TaskStatusRejected.RequiresReview())
	assert.False(t, domain.TaskStatusCompleted.RequiresReview())
	assert.False(t, domain.TaskStatusInProgress.RequiresReview())
}

func TestTaskStatus_IsValid(t *testing.T) {
	assert.True(t, domain.TaskStatusPending.IsValid())
	assert.False(t, domain.TaskStatus("NEW").IsValid())
	assert.False(t, domain.TaskStatus("").IsValid())
}

func TestTaskPriority_IsValid(t *testing.T) {
	assert.True(t, domain.TaskPriorityLow.IsValid())
	assert.True(t, domain.TaskPriorityMedium.IsValid())
	assert.True(t, domain.TaskPriorityHigh.IsValid())
	assert.False(t, domain.TaskPriority("critical").IsValid())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	past := &domain.Task{Status: domain.TaskStatusInProgress, Deadline: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	assert.True(t, past.IsOverdue(now))

	dueToday := &domain.Task{Status: domain.TaskStatusInProgress, Deadline: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)}
	assert.False(t, dueToday.IsOverdue(now))

	future := &domain.Task{Status: domain.TaskStatusInProgress, Deadline: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}
	assert.False(t, future.IsOverdue(now))

	// Terminal tasks are never overdue, whatever their deadline.
	approved := &domain.Task{Status: domain.TaskStatusApproved, Deadline: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	assert.False(t, approved.IsOverdue(now))
}
