package insight

import (
	"fmt"
	"time"

	"github.com/rcliao/pulse/internal/domain"
)

const (
	allClearTip = "All clear! Add a task when you're ready for more."
	fallbackTip = "Pick the top task on your list and give it 25 focused minutes."

	highBacklogThreshold = 2
	doneTodayThreshold   = 3
)

// Tip returns exactly one coaching message, chosen by the first matching
// rule: overdue work, a high-priority backlog, a productive day, an
// empty list, then a generic fallback.
func Tip(tasks []*domain.Task, now time.Time) string {
	var pending, overdue, highPending, doneToday int
	for _, t := range tasks {
		if t.Completed {
			if t.CompletedAt != nil && sameDay(*t.CompletedAt, now) {
				doneToday++
			}
			continue
		}
		pending++
		if t.Deadline != nil && t.Deadline.Before(now) {
			overdue++
		}
		if t.Priority == domain.PriorityHigh {
			highPending++
		}
	}

	switch {
	case overdue > 0:
		noun := "task"
		if overdue > 1 {
			noun = "tasks"
		}
		return fmt.Sprintf("You have %d overdue %s. Clear the oldest one before starting anything new.", overdue, noun)
	case highPending > highBacklogThreshold:
		return fmt.Sprintf("%d high-priority tasks are stacking up. Finish one before adding more.", highPending)
	case doneToday >= doneTodayThreshold:
		return fmt.Sprintf("Great pace! You've completed %d tasks today.", doneToday)
	case pending == 0:
		return allClearTip
	default:
		return fallbackTip
	}
}

// sameDay compares calendar dates in now's location, not elapsed-24h
// windows.
func sameDay(t, now time.Time) bool {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}
