package insight

import (
	"fmt"
	"math"
	"time"

	"github.com/rcliao/pulse/internal/domain"
)

type AlertKind string

const (
	AlertOverdue AlertKind = "overdue"
	AlertUrgent  AlertKind = "urgent"
	AlertSoon    AlertKind = "soon"
)

type Alert struct {
	Task    *domain.Task `json:"task"`
	Kind    AlertKind    `json:"kind"`
	Message string       `json:"message"`
}

// Alerts buckets every non-completed task with a deadline into overdue,
// urgent (< 24h), or soon (< 72h); anything 72h or more out produces no
// alert. Output keeps the input's relative order. Displayed hour and day
// counts round half away from zero (math.Round).
func Alerts(tasks []*domain.Task, now time.Time) []Alert {
	alerts := make([]Alert, 0)
	for _, t := range tasks {
		if t.Completed || t.Deadline == nil {
			continue
		}
		hours := t.Deadline.Sub(now).Hours()
		switch {
		case hours < 0:
			alerts = append(alerts, Alert{
				Task:    t,
				Kind:    AlertOverdue,
				Message: fmt.Sprintf("%q is overdue!", t.Title),
			})
		case hours < 24:
			alerts = append(alerts, Alert{
				Task:    t,
				Kind:    AlertUrgent,
				Message: fmt.Sprintf("%q due in %dh", t.Title, int(math.Round(hours))),
			})
		case hours < 72:
			alerts = append(alerts, Alert{
				Task:    t,
				Kind:    AlertSoon,
				Message: fmt.Sprintf("%q due in %dd", t.Title, int(math.Round(hours/hoursPerDay))),
			})
		}
	}
	return alerts
}
