// Package insight is the prioritization and insight engine: pure,
// stateless transforms from a task snapshot and a single "now" instant
// to derived views. Nothing in this package mutates its input or keeps
// state between calls.
package insight

import (
	"sort"
	"time"

	"github.com/rcliao/pulse/internal/domain"
)

const (
	priorityFactor   = 0.4
	urgencyFactor    = 0.4
	efficiencyFactor = 0.2

	hoursPerDay = 24

	// minUrgencyDenom keeps the urgency denominator away from zero when a
	// deadline sits exactly one day in the past.
	minUrgencyDenom = 1e-6
)

// Score is the composite ranking value for a task evaluated at now:
// priority weight, deadline urgency, and effort efficiency, weighted
// 0.4 / 0.4 / 0.2.
func Score(t *domain.Task, now time.Time) float64 {
	return t.Priority.Weight()*priorityFactor +
		urgency(t, now)*urgencyFactor +
		efficiency(t)*efficiencyFactor
}

// urgency is 1/(daysUntilDeadline+1), or 0 without a deadline. The
// denominator goes negative for tasks more than a day overdue, which
// matches the formula; only the [0, minUrgencyDenom) band is clamped to
// avoid dividing by zero.
func urgency(t *domain.Task, now time.Time) float64 {
	if t.Deadline == nil {
		return 0
	}
	days := t.Deadline.Sub(now).Hours() / hoursPerDay
	denom := days + 1
	if denom >= 0 && denom < minUrgencyDenom {
		denom = minUrgencyDenom
	}
	return 1 / denom
}

func efficiency(t *domain.Task) float64 {
	if t.EstimatedHours <= 0 {
		return 0
	}
	return 1 / t.EstimatedHours
}

// Rank returns all and only the non-completed tasks, ordered by
// descending score. The sort is stable, so equal scores keep their
// input order. The input slice is never reordered or mutated; repeated
// calls with the same snapshot and now yield identical output.
func Rank(tasks []*domain.Task, now time.Time) []*domain.Task {
	type scored struct {
		task  *domain.Task
		score float64
	}

	pending := make([]scored, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		pending = append(pending, scored{task: t, score: Score(t, now)})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].score > pending[j].score
	})

	ranked := make([]*domain.Task, len(pending))
	for i, s := range pending {
		ranked[i] = s.task
	}
	return ranked
}
