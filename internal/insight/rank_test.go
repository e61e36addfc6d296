package insight

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/pulse/internal/domain"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func pendingTask(id, title string, priority domain.Priority) *domain.Task {
	return &domain.Task{
		ID:        id,
		UserID:    "user-1",
		Title:     title,
		Priority:  priority,
		CreatedAt: testNow.Add(-48 * time.Hour),
	}
}

func withDeadline(t *domain.Task, deadline time.Time) *domain.Task {
	t.Deadline = &deadline
	return t
}

func completedTask(id, title string, completedAt time.Time) *domain.Task {
	t := pendingTask(id, title, domain.PriorityMedium)
	t.Complete(completedAt)
	return t
}

func TestRank_ExcludesCompletedTasks(t *testing.T) {
	tasks := []*domain.Task{
		pendingTask("a", "Write report", domain.PriorityLow),
		completedTask("b", "Old chore", testNow.Add(-time.Hour)),
		pendingTask("c", "Review PR", domain.PriorityMedium),
	}

	ranked := Rank(tasks, testNow)

	require.Len(t, ranked, 2)
	for _, task := range ranked {
		assert.False(t, task.Completed)
	}
}

func TestRank_HighPriorityWithDeadlineFirst(t *testing.T) {
	high := withDeadline(pendingTask("a", "Ship release", domain.PriorityHigh), testNow.Add(time.Hour))
	high.EstimatedHours = 2
	low := pendingTask("b", "Water plants", domain.PriorityLow)

	ranked := Rank([]*domain.Task{low, high}, testNow)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
}

func TestRank_DescendingScores(t *testing.T) {
	tasks := []*domain.Task{
		pendingTask("a", "Low", domain.PriorityLow),
		pendingTask("b", "High", domain.PriorityHigh),
		pendingTask("c", "Medium", domain.PriorityMedium),
	}

	ranked := Rank(tasks, testNow)

	require.Len(t, ranked, 3)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, Score(ranked[i-1], testNow), Score(ranked[i], testNow))
	}
}

func TestRank_Idempotent(t *testing.T) {
	tasks := []*domain.Task{
		withDeadline(pendingTask("a", "Taxes", domain.PriorityHigh), testNow.Add(30*time.Hour)),
		pendingTask("b", "Groceries", domain.PriorityLow),
		pendingTask("c", "Inbox zero", domain.PriorityMedium),
	}

	first := Rank(tasks, testNow)
	second := Rank(tasks, testNow)

	assert.Equal(t, first, second)
	// Input order untouched.
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)
	assert.Equal(t, "c", tasks[2].ID)
}

func TestRank_StableTieBreak(t *testing.T) {
	// Identical attributes mean identical scores; input order decides.
	first := pendingTask("a", "Twin one", domain.PriorityMedium)
	second := pendingTask("b", "Twin two", domain.PriorityMedium)

	ranked := Rank([]*domain.Task{first, second}, testNow)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
}

func TestScore_Components(t *testing.T) {
	task := withDeadline(pendingTask("a", "Ship release", domain.PriorityHigh), testNow.Add(time.Hour))
	task.EstimatedHours = 2

	// priority 3*0.4 + urgency (1/(1/24+1))*0.4 + efficiency (1/2)*0.2
	days := 1.0 / 24.0
	expected := 3*0.4 + (1/(days+1))*0.4 + 0.5*0.2
	assert.InDelta(t, expected, Score(task, testNow), 1e-9)
}

func TestScore_NoDeadlineNoEstimate(t *testing.T) {
	task := pendingTask("a", "Someday", domain.PriorityLow)

	// Only the priority term contributes.
	assert.InDelta(t, 0.4, Score(task, testNow), 1e-9)
}

func TestScore_UnknownPriorityLowestWeight(t *testing.T) {
	unknown := pendingTask("a", "Mystery", domain.Priority("critical"))
	low := pendingTask("b", "Plain", domain.PriorityLow)

	assert.InDelta(t, Score(low, testNow), Score(unknown, testNow), 1e-9)
}

func TestScore_RecentlyOverdueOutranksSameDay(t *testing.T) {
	// 12h overdue: days = -0.5, urgency = 1/0.5 = 2.
	overdue := withDeadline(pendingTask("a", "Rent", domain.PriorityLow), testNow.Add(-12*time.Hour))
	dueSoon := withDeadline(pendingTask("b", "Dishes", domain.PriorityLow), testNow.Add(12*time.Hour))

	assert.Greater(t, Score(overdue, testNow), Score(dueSoon, testNow))
}

func TestScore_DeadlineExactlyOneDayAgo(t *testing.T) {
	// daysUntilDeadline+1 == 0 would divide by zero; the clamp keeps the
	// score finite and very large.
	task := withDeadline(pendingTask("a", "Yesterday", domain.PriorityLow), testNow.Add(-24*time.Hour))

	score := Score(task, testNow)
	assert.False(t, math.IsInf(score, 0))
	assert.False(t, math.IsNaN(score))
	assert.Greater(t, score, 1000.0)
}

func TestScore_LongOverdueNegativeUrgency(t *testing.T) {
	// More than a day overdue: the denominator is negative, so the
	// urgency term turns negative, matching the formula.
	task := withDeadline(pendingTask("a", "Ancient", domain.PriorityLow), testNow.Add(-72*time.Hour))

	assert.Less(t, Score(task, testNow), 0.4)
}

func TestRank_EmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil, testNow))
	assert.Empty(t, Rank([]*domain.Task{}, testNow))
}
