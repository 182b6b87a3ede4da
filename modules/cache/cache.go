// Package cache holds the per-user confirmed snapshot of tasks and keeps
// it consistent with the store through coalesced invalidate-and-refetch.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/example/taskflow/domain/task"
	"golang.org/x/sync/singleflight"
)

// Fetcher lists a user's tasks from the authoritative store.
type Fetcher interface {
	List(ctx context.Context, owner string) ([]task.Task, error)
}

// Stats tracks cache activity.
type Stats struct {
	Refetches  uint64 `json:"refetches"`
	Coalesced  uint64 `json:"coalesced"`
	Superseded uint64 `json:"superseded"`
	Failures   uint64 `json:"failures"`
}

// Cache keeps the most recent store-confirmed task list per owner.
// Snapshots are only ever replaced wholesale by a completed refetch;
// nothing patches them in place.
type Cache struct {
	fetcher Fetcher
	timeout time.Duration
	group   singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
	stats   Stats
}

// entry is the snapshot state for a single owner.
type entry struct {
	snapshot  []task.Task
	confirmed bool // at least one successful fetch has landed
	settled   bool // at least one fetch has completed, success or failure
	loading   bool // first invalidation seen, nothing settled yet
	stale     bool // last refetch failed; snapshot is the prior confirmed one
	fetching  bool // a refetch goroutine is in flight
	gen       uint64
}

// New creates a new cache backed by the given fetcher. timeout bounds
// each refetch round trip.
func New(fetcher Fetcher, timeout time.Duration) *Cache {
	return &Cache{
		fetcher: fetcher,
		timeout: timeout,
		entries: make(map[string]*entry),
	}
}

// Snapshot returns the owner's confirmed task list. While a refetch is
// in flight the prior snapshot is served unchanged. On a cold entry the
// fetch happens synchronously; concurrent cold reads for the same owner
// share a single store call.
func (c *Cache) Snapshot(ctx context.Context, owner string) ([]task.Task, error) {
	c.mu.Lock()
	e := c.ensure(owner)
	if e.confirmed || e.fetching {
		snap := copySnapshot(e.snapshot)
		c.mu.Unlock()
		return snap, nil
	}
	gen := e.gen
	c.mu.Unlock()

	v, err, _ := c.group.Do(owner, func() (any, error) {
		return c.fetcher.List(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	tasks := v.([]task.Task)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[owner]; ok && gen == e.gen {
		e.snapshot = tasks
		e.confirmed = true
		e.settled = true
		e.stale = false
	}
	return copySnapshot(tasks), nil
}

// Invalidate marks the owner's snapshot stale and schedules exactly one
// asynchronous refetch. An invalidation that arrives while a refetch is
// in flight coalesces into a single trailing refetch instead of queuing
// another store call, and the in-flight response is discarded.
func (c *Cache) Invalidate(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensure(owner)
	e.gen++
	if !e.settled {
		e.loading = true
	}
	if e.fetching {
		c.stats.Coalesced++
		return
	}
	e.fetching = true
	go c.refetch(owner, e.gen)
}

// refetch performs one list round trip and applies the result only if it
// is still the most recently issued fetch for the owner.
func (c *Cache) refetch(owner string, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	v, err, _ := c.group.Do(owner, func() (any, error) {
		return c.fetcher.List(ctx, owner)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[owner]
	if !ok {
		// Dropped while the fetch was in flight (sign-out).
		return
	}
	if gen != e.gen {
		// A newer invalidation superseded this response; discard it and
		// run the trailing refetch it asked for.
		c.stats.Superseded++
		go c.refetch(owner, e.gen)
		return
	}

	c.stats.Refetches++
	if err != nil {
		c.stats.Failures++
		e.stale = true
	} else {
		e.snapshot = v.([]task.Task)
		e.confirmed = true
		e.stale = false
	}
	e.settled = true
	e.loading = false
	e.fetching = false
}

// State reports the owner's loading and stale flags. Loading is true
// from the first invalidation until the first refetch settles; stale is
// true when the last refetch failed and the prior snapshot is being
// served.
func (c *Cache) State(owner string) (loading, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[owner]
	if !ok {
		return false, false
	}
	return e.loading, e.stale
}

// Drop discards the owner's snapshot entirely. Used on sign-out; any
// in-flight refetch result for the owner is ignored.
func (c *Cache) Drop(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, owner)
}

// GetStats returns a snapshot of the cache statistics.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// ensure returns the entry for owner, creating it if needed.
// Caller must hold c.mu.
func (c *Cache) ensure(owner string) *entry {
	e, ok := c.entries[owner]
	if !ok {
		e = &entry{}
		c.entries[owner] = e
	}
	return e
}

func copySnapshot(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	return out
}
