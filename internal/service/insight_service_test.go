package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/pulse/internal/domain"
	"github.com/rcliao/pulse/internal/insight"
	"github.com/rcliao/pulse/internal/storage"
)

func newInsightFixture(t *testing.T) (*TaskService, *InsightService) {
	t.Helper()
	repo := storage.NewMemoryStore()
	tasks := NewTaskService(repo).WithClock(fixedClock)
	insights := NewInsightService(repo).WithClock(fixedClock)
	return tasks, insights
}

func TestInsightService_Ranked(t *testing.T) {
	tasks, insights := newInsightFixture(t)

	deadline := fixedNow.Add(time.Hour)
	high, err := tasks.Create("user-1", CreateTaskInput{
		Title:          "Ship release",
		Priority:       domain.PriorityHigh,
		Deadline:       &deadline,
		EstimatedHours: 2,
	})
	require.NoError(t, err)
	low, err := tasks.Create("user-1", CreateTaskInput{Title: "Water plants", Priority: domain.PriorityLow})
	require.NoError(t, err)

	ranked, err := insights.Ranked("user-1")
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, high.ID, ranked[0].ID)
	assert.Equal(t, low.ID, ranked[1].ID)
}

func TestInsightService_RankedScopedToUser(t *testing.T) {
	tasks, insights := newInsightFixture(t)

	_, err := tasks.Create("user-1", CreateTaskInput{Title: "Mine"})
	require.NoError(t, err)
	_, err = tasks.Create("user-2", CreateTaskInput{Title: "Theirs"})
	require.NoError(t, err)

	ranked, err := insights.Ranked("user-1")
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Mine", ranked[0].Title)
}

func TestInsightService_Alerts(t *testing.T) {
	tasks, insights := newInsightFixture(t)

	overdue := fixedNow.Add(-time.Hour)
	_, err := tasks.Create("user-1", CreateTaskInput{Title: "Pay rent", Deadline: &overdue})
	require.NoError(t, err)

	alerts, err := insights.Alerts("user-1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, insight.AlertOverdue, alerts[0].Kind)
	assert.Equal(t, `"Pay rent" is overdue!`, alerts[0].Message)
}

func TestInsightService_TipEmptyList(t *testing.T) {
	_, insights := newInsightFixture(t)

	tip, err := insights.Tip("user-1")
	require.NoError(t, err)
	assert.Equal(t, "All clear! Add a task when you're ready for more.", tip)
}

func TestInsightService_AnalyticsEmpty(t *testing.T) {
	_, insights := newInsightFixture(t)

	stats, err := insights.Analytics("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Rate)
	assert.Len(t, stats.CompletionTrend, 7)
}

func TestInsightService_Dashboard(t *testing.T) {
	tasks, insights := newInsightFixture(t)

	deadline := fixedNow.Add(12 * time.Hour)
	task, err := tasks.Create("user-1", CreateTaskInput{Title: "Prep demo", Priority: domain.PriorityHigh, Deadline: &deadline})
	require.NoError(t, err)

	dash, err := insights.Dashboard("user-1")
	require.NoError(t, err)
	require.Len(t, dash.Ranked, 1)
	assert.Equal(t, task.ID, dash.Ranked[0].ID)
	require.Len(t, dash.Alerts, 1)
	assert.Equal(t, insight.AlertUrgent, dash.Alerts[0].Kind)
	assert.NotEmpty(t, dash.Tip)
	assert.Equal(t, 1, dash.Analytics.Total)
	assert.True(t, dash.GeneratedAt.Equal(fixedNow))
}
