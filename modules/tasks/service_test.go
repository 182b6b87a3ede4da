package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/example/taskflow/domain/task"
)

// fakeGateway records calls and returns scripted results.
type fakeGateway struct {
	createCalls int
	updateCalls int
	deleteCalls int
	err         error
	tasks       []task.Task
}

func (g *fakeGateway) List(_ context.Context, _ string) ([]task.Task, error) {
	return g.tasks, g.err
}

func (g *fakeGateway) Create(_ context.Context, owner string, fields task.Validated) (*task.Task, error) {
	g.createCalls++
	if g.err != nil {
		return nil, g.err
	}
	return &task.Task{ID: "t1", Owner: owner, Title: fields.Title, Status: fields.Status, Priority: fields.Priority}, nil
}

func (g *fakeGateway) Update(_ context.Context, owner, id string, fields task.Validated) (*task.Task, error) {
	g.updateCalls++
	if g.err != nil {
		return nil, g.err
	}
	return &task.Task{ID: id, Owner: owner, Title: fields.Title, Status: fields.Status, Priority: fields.Priority}, nil
}

func (g *fakeGateway) Delete(_ context.Context, _, _ string) error {
	g.deleteCalls++
	return g.err
}

// fakeCache counts invalidations and serves a fixed snapshot.
type fakeCache struct {
	invalidations int
	snapshot      []task.Task
	snapshotErr   error
	loading       bool
	stale         bool
}

func (c *fakeCache) Snapshot(_ context.Context, _ string) ([]task.Task, error) {
	return c.snapshot, c.snapshotErr
}

func (c *fakeCache) State(_ string) (loading, stale bool) {
	return c.loading, c.stale
}

func (c *fakeCache) Invalidate(_ string) {
	c.invalidations++
}

func validRaw() task.Raw {
	return task.Raw{
		Title:    "Buy milk",
		Status:   string(task.StatusPending),
		Priority: string(task.PriorityMedium),
	}
}

func TestCreateInvalidatesOncePerAck(t *testing.T) {
	gateway := &fakeGateway{}
	cache := &fakeCache{}
	service := NewService(gateway, cache)

	result := service.Create(context.Background(), "alice", validRaw())

	if result.State != StateSucceeded {
		t.Fatalf("Expected succeeded, got %s (%v)", result.State, result.Err)
	}
	if result.Task == nil || result.Task.ID == "" {
		t.Error("Expected the stored task in the result")
	}
	if cache.invalidations != 1 {
		t.Errorf("Expected exactly 1 invalidation, got %d", cache.invalidations)
	}
}

func TestCreateValidationFailureSkipsStoreAndCache(t *testing.T) {
	gateway := &fakeGateway{}
	cache := &fakeCache{}
	service := NewService(gateway, cache)

	result := service.Create(context.Background(), "alice", task.Raw{
		Title:    "   ",
		Status:   string(task.StatusPending),
		Priority: string(task.PriorityMedium),
	})

	if result.State != StateValidationFailed {
		t.Fatalf("Expected validation_failed, got %s", result.State)
	}
	if len(result.Violations) != 1 || result.Violations[0].Kind != task.ViolationEmptyTitle {
		t.Errorf("Expected empty title violation, got %v", result.Violations)
	}
	if gateway.createCalls != 0 {
		t.Errorf("Expected no store call, got %d", gateway.createCalls)
	}
	if cache.invalidations != 0 {
		t.Errorf("Expected no invalidation, got %d", cache.invalidations)
	}
}

func TestCreateStoreFailureLeavesCacheUntouched(t *testing.T) {
	gateway := &fakeGateway{err: task.ErrStoreUnavailable}
	cache := &fakeCache{}
	service := NewService(gateway, cache)

	result := service.Create(context.Background(), "alice", validRaw())

	if result.State != StateFailed {
		t.Fatalf("Expected failed, got %s", result.State)
	}
	if !errors.Is(result.Err, task.ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", result.Err)
	}
	if cache.invalidations != 0 {
		t.Errorf("Expected no invalidation, got %d", cache.invalidations)
	}
}

func TestUpdateMissingTask(t *testing.T) {
	gateway := &fakeGateway{err: task.ErrNotFound}
	cache := &fakeCache{}
	service := NewService(gateway, cache)

	result := service.Update(context.Background(), "alice", "gone", validRaw())

	if result.State != StateFailed {
		t.Fatalf("Expected failed, got %s", result.State)
	}
	if !errors.Is(result.Err, task.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", result.Err)
	}
	if cache.invalidations != 0 {
		t.Errorf("Expected no invalidation, got %d", cache.invalidations)
	}
}

func TestDeleteInvalidatesOnAck(t *testing.T) {
	gateway := &fakeGateway{}
	cache := &fakeCache{}
	service := NewService(gateway, cache)

	result := service.Delete(context.Background(), "alice", "t1")

	if result.State != StateSucceeded {
		t.Fatalf("Expected succeeded, got %s (%v)", result.State, result.Err)
	}
	if cache.invalidations != 1 {
		t.Errorf("Expected exactly 1 invalidation, got %d", cache.invalidations)
	}
}

func TestDeleteMissingTaskSurfacesNotFound(t *testing.T) {
	gateway := &fakeGateway{err: task.ErrNotFound}
	cache := &fakeCache{}
	service := NewService(gateway, cache)

	result := service.Delete(context.Background(), "alice", "gone")

	if result.State != StateFailed {
		t.Fatalf("Expected failed, got %s", result.State)
	}
	if !errors.Is(result.Err, task.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", result.Err)
	}
}

func TestViewFiltersSnapshotAndReportsState(t *testing.T) {
	cache := &fakeCache{
		snapshot: []task.Task{
			{ID: "1", Title: "Ship release", Status: task.StatusInProgress, Priority: task.PriorityHigh},
			{ID: "2", Title: "Buy milk", Status: task.StatusPending, Priority: task.PriorityLow},
		},
		stale: true,
	}
	service := NewService(&fakeGateway{}, cache)

	view, err := service.View(context.Background(), "alice", "ship", task.FilterAll, task.FilterAll)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}

	if len(view.Tasks) != 1 || view.Tasks[0].ID != "1" {
		t.Errorf("Expected only the shipping task, got %v", view.Tasks)
	}
	if !view.Stale {
		t.Error("Expected the stale flag to pass through")
	}
	if view.Loading {
		t.Error("Expected loading to be false")
	}
}

func TestStats(t *testing.T) {
	cache := &fakeCache{
		snapshot: []task.Task{
			{ID: "1", Status: task.StatusPending},
			{ID: "2", Status: task.StatusPending},
			{ID: "3", Status: task.StatusInProgress},
			{ID: "4", Status: task.StatusCompleted},
		},
	}
	service := NewService(&fakeGateway{}, cache)

	stats, err := service.Stats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.Total != 4 || stats.Pending != 2 || stats.InProgress != 1 || stats.Completed != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
