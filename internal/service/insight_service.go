package service

import (
	"time"

	"github.com/rcliao/pulse/internal/domain"
	"github.com/rcliao/pulse/internal/insight"
)

// InsightService runs the prioritization engine over one user's tasks.
// Every method takes a single snapshot of the task list and the clock
// at entry, so all derived values within one call are consistent.
type InsightService struct {
	repo domain.TaskRepository
	now  func() time.Time
}

func NewInsightService(repo domain.TaskRepository) *InsightService {
	return &InsightService{repo: repo, now: time.Now}
}

// WithClock overrides the time source, primarily for tests.
func (s *InsightService) WithClock(now func() time.Time) *InsightService {
	s.now = now
	return s
}

func (s *InsightService) snapshot(userID string) ([]*domain.Task, time.Time, error) {
	tasks, err := s.repo.List(domain.TaskFilter{UserID: &userID})
	if err != nil {
		return nil, time.Time{}, err
	}
	return tasks, s.now(), nil
}

// Ranked returns the user's pending tasks in priority order.
func (s *InsightService) Ranked(userID string) ([]*domain.Task, error) {
	tasks, now, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}
	return insight.Rank(tasks, now), nil
}

// Alerts returns deadline alerts for the user's pending tasks.
func (s *InsightService) Alerts(userID string) ([]insight.Alert, error) {
	tasks, now, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}
	return insight.Alerts(tasks, now), nil
}

// Tip returns the single coaching message for the user's current state.
func (s *InsightService) Tip(userID string) (string, error) {
	tasks, now, err := s.snapshot(userID)
	if err != nil {
		return "", err
	}
	return insight.Tip(tasks, now), nil
}

// Analytics returns trend, histogram, and completion summary.
func (s *InsightService) Analytics(userID string) (insight.Analytics, error) {
	tasks, now, err := s.snapshot(userID)
	if err != nil {
		return insight.Analytics{}, err
	}
	return insight.Aggregate(tasks, now), nil
}

// Dashboard is the one-call aggregate behind the tracker's main screen:
// all four engine views computed from the same snapshot.
type Dashboard struct {
	Ranked      []*domain.Task    `json:"ranked"`
	Alerts      []insight.Alert   `json:"alerts"`
	Tip         string            `json:"tip"`
	Analytics   insight.Analytics `json:"analytics"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

func (s *InsightService) Dashboard(userID string) (*Dashboard, error) {
	tasks, now, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Ranked:      insight.Rank(tasks, now),
		Alerts:      insight.Alerts(tasks, now),
		Tip:         insight.Tip(tasks, now),
		Analytics:   insight.Aggregate(tasks, now),
		GeneratedAt: now,
	}, nil
}
