// Package store provides the remote store gateway for task records.
package store

import (
	"context"

	"github.com/example/taskflow/domain/task"
)

// Gateway is the narrow boundary to the authoritative task store. Every
// operation is scoped to the owning user; the store enforces row-level
// ownership, so an id that belongs to someone else behaves exactly like
// a missing one.
type Gateway interface {
	// List returns all of the owner's tasks, newest-created first.
	List(ctx context.Context, owner string) ([]task.Task, error)
	// Create inserts a validated payload and returns the stored task
	// with its store-assigned id and timestamps.
	Create(ctx context.Context, owner string, fields task.Validated) (*task.Task, error)
	// Update overwrites the mutable fields of the owner's task.
	// Returns task.ErrNotFound if id is not the caller's.
	Update(ctx context.Context, owner, id string, fields task.Validated) (*task.Task, error)
	// Delete removes the owner's task. Returns task.ErrNotFound if id
	// is not the caller's.
	Delete(ctx context.Context, owner, id string) error
}
