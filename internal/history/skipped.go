// Package history tracks what was played and what was skipped.
package history

import (
	"errors"
	"slices"
)

// DefaultSkippedCapacity is how many skips are remembered
const DefaultSkippedCapacity = 10

// ErrInvalidCapacity is returned for non-positive capacities
var ErrInvalidCapacity = errors.New("capacity must be positive")

// SkippedTracker remembers the most recently skipped song ids.
// Skipping an id already tracked moves it to the newest position.
type SkippedTracker struct {
	order    []string
	set      map[string]struct{}
	capacity int
}

// NewSkippedTracker creates a tracker holding up to capacity ids
func NewSkippedTracker(capacity int) (*SkippedTracker, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &SkippedTracker{
		set:      make(map[string]struct{}),
		capacity: capacity,
	}, nil
}

// Skip records id as skipped, evicting the oldest id when full
func (t *SkippedTracker) Skip(id string) {
	if _, ok := t.set[id]; ok {
		t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	}
	t.order = append(t.order, id)
	t.set[id] = struct{}{}
	t.trim()
}

func (t *SkippedTracker) trim() {
	for len(t.order) > t.capacity {
		delete(t.set, t.order[0])
		t.order = t.order[1:]
	}
}

// IsRecentlySkipped reports whether id is tracked
func (t *SkippedTracker) IsRecentlySkipped(id string) bool {
	_, ok := t.set[id]
	return ok
}

// Recent returns tracked ids, oldest first
func (t *SkippedTracker) Recent() []string {
	return slices.Clone(t.order)
}

// Len returns the number of tracked ids
func (t *SkippedTracker) Len() int {
	return len(t.order)
}

// Capacity returns the tracker bound
func (t *SkippedTracker) Capacity() int {
	return t.capacity
}

// Clear forgets every skip
func (t *SkippedTracker) Clear() {
	t.order = nil
	clear(t.set)
}

// SetCapacity changes the bound, keeping the newest ids when shrinking
func (t *SkippedTracker) SetCapacity(n int) error {
	if n <= 0 {
		return ErrInvalidCapacity
	}
	t.capacity = n
	t.trim()
	return nil
}
