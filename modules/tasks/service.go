// Package tasks coordinates task mutations against the store and keeps
// the cached snapshot in sync, and derives the filtered view served to
// the UI.
package tasks

import (
	"context"
	"log"

	"github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/modules/store"
)

// SnapshotCache is the subset of the task cache the coordinator uses.
type SnapshotCache interface {
	Snapshot(ctx context.Context, owner string) ([]task.Task, error)
	State(owner string) (loading, stale bool)
	Invalidate(owner string)
}

// Service orchestrates create/update/delete attempts: validate, submit
// to the gateway, and invalidate the cache exactly once per acknowledged
// mutation. It holds no per-attempt state and is safe to invoke
// concurrently.
type Service struct {
	gateway store.Gateway
	cache   SnapshotCache
}

// NewService creates a new task service.
func NewService(gateway store.Gateway, cache SnapshotCache) *Service {
	return &Service{
		gateway: gateway,
		cache:   cache,
	}
}

// Create validates a raw payload and submits it to the store. On
// acknowledgment the cache is invalidated; on any failure it is left
// untouched.
func (s *Service) Create(ctx context.Context, owner string, raw task.Raw) Result {
	fields, verr := task.Validate(raw)
	if verr != nil {
		return validationFailed(verr)
	}

	t, err := s.gateway.Create(ctx, owner, fields)
	if err != nil {
		return failed(err)
	}

	s.cache.Invalidate(owner)
	log.Printf("[tasks] Created task %s, cache invalidated", t.ID)
	return succeeded(t)
}

// Update validates a raw payload and overwrites the identified task.
// A target deleted out from under the caller surfaces as a Failed
// result carrying task.ErrNotFound.
func (s *Service) Update(ctx context.Context, owner, id string, raw task.Raw) Result {
	fields, verr := task.Validate(raw)
	if verr != nil {
		return validationFailed(verr)
	}

	t, err := s.gateway.Update(ctx, owner, id, fields)
	if err != nil {
		return failed(err)
	}

	s.cache.Invalidate(owner)
	log.Printf("[tasks] Updated task %s, cache invalidated", id)
	return succeeded(t)
}

// Delete removes the identified task. There is no validation step.
func (s *Service) Delete(ctx context.Context, owner, id string) Result {
	if err := s.gateway.Delete(ctx, owner, id); err != nil {
		return failed(err)
	}

	s.cache.Invalidate(owner)
	log.Printf("[tasks] Deleted task %s, cache invalidated", id)
	return Result{State: StateSucceeded}
}

// TaskView is the filtered task list plus the cache signals the UI
// renders alongside it.
type TaskView struct {
	Tasks   []task.Task `json:"tasks"`
	Loading bool        `json:"loading"`
	Stale   bool        `json:"stale"`
}

// View returns the owner's snapshot narrowed by the free-text query and
// the two categorical filters.
func (s *Service) View(ctx context.Context, owner, query, statusFilter, priorityFilter string) (*TaskView, error) {
	snapshot, err := s.cache.Snapshot(ctx, owner)
	if err != nil {
		return nil, err
	}
	loading, stale := s.cache.State(owner)

	return &TaskView{
		Tasks:   task.View(snapshot, query, statusFilter, priorityFilter),
		Loading: loading,
		Stale:   stale,
	}, nil
}

// DashboardStats summarizes the owner's tasks by status.
type DashboardStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// Stats computes the dashboard counters from the owner's snapshot.
func (s *Service) Stats(ctx context.Context, owner string) (*DashboardStats, error) {
	snapshot, err := s.cache.Snapshot(ctx, owner)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Total: len(snapshot)}
	for _, t := range snapshot {
		switch t.Status {
		case task.StatusPending:
			stats.Pending++
		case task.StatusInProgress:
			stats.InProgress++
		case task.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}
