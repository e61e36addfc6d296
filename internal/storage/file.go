package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rcliao/pulse/internal/domain"
)

// FileStore persists tasks as a single JSON document under
// <basePath>/.pulse/tasks.json. Writes go through a temp file and
// rename so a crash never leaves a half-written store. The file keeps
// creation order, which List preserves.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStore(basePath string) (*FileStore, error) {
	fs := &FileStore{basePath: basePath}
	if err := fs.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}
	return fs, nil
}

func (fs *FileStore) initialize() error {
	dir := filepath.Join(fs.basePath, ".pulse")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := fs.tasksPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fs.saveTasks([]*domain.Task{})
	}
	return nil
}

func (fs *FileStore) tasksPath() string {
	return filepath.Join(fs.basePath, ".pulse", "tasks.json")
}

func (fs *FileStore) loadTasks() ([]*domain.Task, error) {
	file, err := os.Open(fs.tasksPath())
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var tasks []*domain.Task
	if err := json.NewDecoder(file).Decode(&tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (fs *FileStore) saveTasks(tasks []*domain.Task) error {
	path := fs.tasksPath()
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(tasks); err != nil {
		os.Remove(tempPath)
		return err
	}

	return os.Rename(tempPath, path)
}

func (fs *FileStore) Create(task *domain.Task) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	tasks, err := fs.loadTasks()
	if err != nil {
		return err
	}

	for _, existing := range tasks {
		if existing.ID == task.ID {
			return fmt.Errorf("create task %s: %w", task.ID, domain.ErrDuplicateID)
		}
	}

	tasks = append(tasks, task.Clone())
	return fs.saveTasks(tasks)
}

func (fs *FileStore) Update(id string, upd domain.TaskUpdate, now time.Time) (*domain.Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	tasks, err := fs.loadTasks()
	if err != nil {
		return nil, err
	}

	for i, task := range tasks {
		if task.ID == id {
			updated := task.Clone()
			updated.Apply(upd, now)
			tasks[i] = updated
			if err := fs.saveTasks(tasks); err != nil {
				return nil, err
			}
			return updated.Clone(), nil
		}
	}

	return nil, fmt.Errorf("update task %s: %w", id, domain.ErrNotFound)
}

func (fs *FileStore) Get(id string) (*domain.Task, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	tasks, err := fs.loadTasks()
	if err != nil {
		return nil, err
	}

	for _, task := range tasks {
		if task.ID == id {
			return task.Clone(), nil
		}
	}

	return nil, fmt.Errorf("get task %s: %w", id, domain.ErrNotFound)
}

func (fs *FileStore) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	tasks, err := fs.loadTasks()
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.Matches(task) {
			result = append(result, task.Clone())
		}
	}
	return result, nil
}

func (fs *FileStore) Delete(id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	tasks, err := fs.loadTasks()
	if err != nil {
		return err
	}

	for i, task := range tasks {
		if task.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return fs.saveTasks(tasks)
		}
	}

	return fmt.Errorf("delete task %s: %w", id, domain.ErrNotFound)
}
