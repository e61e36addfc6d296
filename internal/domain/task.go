package domain

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight returns the scoring weight for a priority. Unknown or unset
// priorities fall through to the lowest weight.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 1
	}
}

// Known reports whether the priority is one of the three documented values.
func (p Priority) Known() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

type Task struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Title          string     `json:"title"`
	Notes          string     `json:"notes,omitempty"`
	Priority       Priority   `json:"priority"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	EstimatedHours float64    `json:"estimatedHours,omitempty"`
	Completed      bool       `json:"completed"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

func NewTask(userID, title string, priority Priority) *Task {
	return &Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
}

// Complete marks the task done and stamps CompletedAt. Completing an
// already-completed task keeps the original timestamp.
func (t *Task) Complete(now time.Time) {
	if t.Completed {
		return
	}
	t.Completed = true
	at := now
	t.CompletedAt = &at
}

// Reopen clears the completion state. CompletedAt is present if and only
// if Completed is true.
func (t *Task) Reopen() {
	t.Completed = false
	t.CompletedAt = nil
}

// Clone returns a deep copy so callers can hand out tasks without
// sharing mutable pointers.
func (t *Task) Clone() *Task {
	c := *t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

// TaskUpdate is a partial update; nil fields are left untouched.
// ClearDeadline removes the deadline and wins over Deadline.
type TaskUpdate struct {
	Title          *string
	Notes          *string
	Priority       *Priority
	Deadline       *time.Time
	ClearDeadline  bool
	EstimatedHours *float64
	Completed      *bool
}

// Apply folds an update into the task. Completion transitions go through
// Complete/Reopen so the CompletedAt invariant holds, and negative effort
// estimates are clamped to zero rather than scored as a bonus.
func (t *Task) Apply(upd TaskUpdate, now time.Time) {
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Notes != nil {
		t.Notes = *upd.Notes
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.ClearDeadline {
		t.Deadline = nil
	} else if upd.Deadline != nil {
		d := *upd.Deadline
		t.Deadline = &d
	}
	if upd.EstimatedHours != nil {
		hours := *upd.EstimatedHours
		if hours < 0 {
			hours = 0
		}
		t.EstimatedHours = hours
	}
	if upd.Completed != nil {
		if *upd.Completed {
			t.Complete(now)
		} else {
			t.Reopen()
		}
	}
}

type TaskFilter struct {
	UserID    *string
	Completed *bool
	Priority  *Priority
}

// Matches reports whether the task passes every set filter field.
func (f TaskFilter) Matches(t *Task) bool {
	if f.UserID != nil && t.UserID != *f.UserID {
		return false
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	return true
}

// TaskRepository is the persistence seam injected into services. List
// returns tasks in creation order so downstream views are deterministic.
type TaskRepository interface {
	Create(task *Task) error
	Update(id string, upd TaskUpdate, now time.Time) (*Task, error)
	Get(id string) (*Task, error)
	List(filter TaskFilter) ([]*Task, error)
	Delete(id string) error
}
