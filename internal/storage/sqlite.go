package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/rcliao/pulse/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	title           TEXT NOT NULL,
	notes           TEXT NOT NULL DEFAULT '',
	priority        TEXT NOT NULL DEFAULT 'low',
	deadline        TIMESTAMP,
	estimated_hours REAL NOT NULL DEFAULT 0,
	completed       INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMP NOT NULL,
	completed_at    TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
`

// SQLiteStore is a durable task repository backed by a local SQLite
// database. List orders by (created_at, id) so output is deterministic
// even for tasks created in the same instant.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}

func (ss *SQLiteStore) Create(task *domain.Task) error {
	_, err := ss.db.Exec(`
		INSERT INTO tasks (id, user_id, title, notes, priority, deadline, estimated_hours, completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Notes, string(task.Priority),
		nullableTime(task.Deadline), task.EstimatedHours, task.Completed,
		task.CreatedAt, nullableTime(task.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("create task %s: %w", task.ID, err)
	}
	return nil
}

func (ss *SQLiteStore) Update(id string, upd domain.TaskUpdate, now time.Time) (*domain.Task, error) {
	tx, err := ss.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	defer tx.Rollback()

	task, err := scanTask(tx.QueryRow(selectColumns+" FROM tasks WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("update task %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}

	task.Apply(upd, now)

	_, err = tx.Exec(`
		UPDATE tasks
		SET title = ?, notes = ?, priority = ?, deadline = ?, estimated_hours = ?, completed = ?, completed_at = ?
		WHERE id = ?`,
		task.Title, task.Notes, string(task.Priority), nullableTime(task.Deadline),
		task.EstimatedHours, task.Completed, nullableTime(task.CompletedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	return task, nil
}

func (ss *SQLiteStore) Get(id string) (*domain.Task, error) {
	task, err := scanTask(ss.db.QueryRow(selectColumns+" FROM tasks WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get task %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

func (ss *SQLiteStore) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	query := selectColumns + " FROM tasks"
	var conditions []string
	var args []interface{}

	if filter.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.Completed != nil {
		conditions = append(conditions, "completed = ?")
		args = append(args, *filter.Completed)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(*filter.Priority))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at, id"

	rows, err := ss.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return result, nil
}

func (ss *SQLiteStore) Delete(id string) error {
	result, err := ss.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const selectColumns = "SELECT id, user_id, title, notes, priority, deadline, estimated_hours, completed, created_at, completed_at"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var priority string
	var deadline, completedAt sql.NullTime

	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Notes, &priority,
		&deadline, &task.EstimatedHours, &task.Completed,
		&task.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	if deadline.Valid {
		d := deadline.Time
		task.Deadline = &d
	}
	if completedAt.Valid {
		at := completedAt.Time
		task.CompletedAt = &at
	}
	return &task, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
