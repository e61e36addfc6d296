package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when no task has the given ID.
	ErrNotFound = errors.New("task not found")
	// ErrDuplicateID is returned when creating a task whose ID already exists.
	ErrDuplicateID = errors.New("task ID already exists")
)
