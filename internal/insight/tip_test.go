package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/pulse/internal/domain"
)

func TestTip_OverdueWinsOverBacklog(t *testing.T) {
	tasks := []*domain.Task{
		withDeadline(pendingTask("a", "Late", domain.PriorityLow), testNow.Add(-time.Hour)),
		pendingTask("b", "One", domain.PriorityHigh),
		pendingTask("c", "Two", domain.PriorityHigh),
		pendingTask("d", "Three", domain.PriorityHigh),
	}

	tip := Tip(tasks, testNow)

	assert.Equal(t, "You have 1 overdue task. Clear the oldest one before starting anything new.", tip)
}

func TestTip_OverduePlural(t *testing.T) {
	tasks := []*domain.Task{
		withDeadline(pendingTask("a", "Late", domain.PriorityLow), testNow.Add(-time.Hour)),
		withDeadline(pendingTask("b", "Later", domain.PriorityLow), testNow.Add(-2*time.Hour)),
	}

	tip := Tip(tasks, testNow)

	assert.Equal(t, "You have 2 overdue tasks. Clear the oldest one before starting anything new.", tip)
}

func TestTip_HighPriorityBacklog(t *testing.T) {
	tasks := []*domain.Task{
		pendingTask("a", "One", domain.PriorityHigh),
		pendingTask("b", "Two", domain.PriorityHigh),
		pendingTask("c", "Three", domain.PriorityHigh),
	}

	tip := Tip(tasks, testNow)

	assert.Equal(t, "3 high-priority tasks are stacking up. Finish one before adding more.", tip)
}

func TestTip_BacklogNeedsMoreThanTwo(t *testing.T) {
	tasks := []*domain.Task{
		pendingTask("a", "One", domain.PriorityHigh),
		pendingTask("b", "Two", domain.PriorityHigh),
	}

	assert.Equal(t, fallbackTip, Tip(tasks, testNow))
}

func TestTip_ProductiveDay(t *testing.T) {
	tasks := []*domain.Task{
		completedTask("a", "One", testNow.Add(-time.Hour)),
		completedTask("b", "Two", testNow.Add(-2*time.Hour)),
		completedTask("c", "Three", testNow.Add(-3*time.Hour)),
		pendingTask("d", "Leftover", domain.PriorityLow),
	}

	tip := Tip(tasks, testNow)

	assert.Equal(t, "Great pace! You've completed 3 tasks today.", tip)
}

func TestTip_CompletedYesterdayDoesNotCount(t *testing.T) {
	yesterday := testNow.Add(-24 * time.Hour)
	tasks := []*domain.Task{
		completedTask("a", "One", yesterday),
		completedTask("b", "Two", yesterday),
		completedTask("c", "Three", yesterday),
		pendingTask("d", "Leftover", domain.PriorityLow),
	}

	assert.Equal(t, fallbackTip, Tip(tasks, testNow))
}

func TestTip_AllClearWhenNothingPending(t *testing.T) {
	assert.Equal(t, allClearTip, Tip(nil, testNow))

	onlyDone := []*domain.Task{completedTask("a", "Old", testNow.Add(-48*time.Hour))}
	assert.Equal(t, allClearTip, Tip(onlyDone, testNow))
}

func TestTip_Fallback(t *testing.T) {
	tasks := []*domain.Task{pendingTask("a", "Ordinary", domain.PriorityMedium)}

	assert.Equal(t, fallbackTip, Tip(tasks, testNow))
}

func TestTip_NeverEmpty(t *testing.T) {
	cases := [][]*domain.Task{
		nil,
		{pendingTask("a", "X", domain.PriorityLow)},
		{completedTask("b", "Y", testNow)},
	}
	for _, tasks := range cases {
		assert.NotEmpty(t, Tip(tasks, testNow))
	}
}
