package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/rcliao/pulse/internal/domain"
)

// MemoryStore is an in-memory task repository. Tasks are cloned on the
// way in and out so callers never share pointers with the store, and
// List returns creation order.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*domain.Task),
	}
}

func (ms *MemoryStore) Create(task *domain.Task) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.tasks[task.ID]; exists {
		return fmt.Errorf("create task %s: %w", task.ID, domain.ErrDuplicateID)
	}

	ms.tasks[task.ID] = task.Clone()
	ms.order = append(ms.order, task.ID)
	return nil
}

func (ms *MemoryStore) Update(id string, upd domain.TaskUpdate, now time.Time) (*domain.Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, exists := ms.tasks[id]
	if !exists {
		return nil, fmt.Errorf("update task %s: %w", id, domain.ErrNotFound)
	}

	updated := task.Clone()
	updated.Apply(upd, now)
	ms.tasks[id] = updated
	return updated.Clone(), nil
}

func (ms *MemoryStore) Get(id string) (*domain.Task, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	task, exists := ms.tasks[id]
	if !exists {
		return nil, fmt.Errorf("get task %s: %w", id, domain.ErrNotFound)
	}

	return task.Clone(), nil
}

func (ms *MemoryStore) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make([]*domain.Task, 0, len(ms.order))
	for _, id := range ms.order {
		task := ms.tasks[id]
		if filter.Matches(task) {
			result = append(result, task.Clone())
		}
	}

	return result, nil
}

func (ms *MemoryStore) Delete(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.tasks[id]; !exists {
		return fmt.Errorf("delete task %s: %w", id, domain.ErrNotFound)
	}

	delete(ms.tasks, id)
	for i, existing := range ms.order {
		if existing == id {
			ms.order = append(ms.order[:i], ms.order[i+1:]...)
			break
		}
	}
	return nil
}
