// Package service wires the task repository to the insight engine and
// enforces input validation on the way into storage.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/pulse/internal/domain"
)

// TaskService owns task CRUD for the tracker. The clock is injected so
// completion timestamps are testable.
type TaskService struct {
	repo domain.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

// WithClock overrides the time source, primarily for tests.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

type CreateTaskInput struct {
	Title          string          `json:"title"`
	Notes          string          `json:"notes"`
	Priority       domain.Priority `json:"priority"`
	Deadline       *time.Time      `json:"deadline"`
	EstimatedHours float64         `json:"estimatedHours"`
}

// Create validates the input and stores a new task. An empty priority
// defaults to medium; negative effort estimates are clamped to zero so
// they never score as a bonus.
func (s *TaskService) Create(userID string, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID must not be empty")
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := domain.NewTask(userID, title, priority)
	task.Notes = input.Notes
	if input.Deadline != nil {
		d := *input.Deadline
		task.Deadline = &d
	}
	if input.EstimatedHours > 0 {
		task.EstimatedHours = input.EstimatedHours
	}

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(id string, upd domain.TaskUpdate) (*domain.Task, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}
	return s.repo.Update(id, upd, s.now())
}

// Complete marks a task done, stamping CompletedAt with the service clock.
func (s *TaskService) Complete(id string) (*domain.Task, error) {
	completed := true
	return s.repo.Update(id, domain.TaskUpdate{Completed: &completed}, s.now())
}

// Reopen puts a completed task back on the list and clears CompletedAt.
func (s *TaskService) Reopen(id string) (*domain.Task, error) {
	completed := false
	return s.repo.Update(id, domain.TaskUpdate{Completed: &completed}, s.now())
}

func (s *TaskService) Get(id string) (*domain.Task, error) {
	return s.repo.Get(id)
}

func (s *TaskService) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	return s.repo.List(filter)
}

func (s *TaskService) Delete(id string) error {
	return s.repo.Delete(id)
}
