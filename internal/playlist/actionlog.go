package playlist

import (
	"errors"

	"github.com/1mb-dev/playwise/internal/song"
)

// DefaultUndoCapacity is how many edits the action log keeps
const DefaultUndoCapacity = 50

// ErrInvalidCapacity is returned for non-positive capacities
var ErrInvalidCapacity = errors.New("capacity must be positive")

// ActionKind names a reversible playlist edit
type ActionKind string

// Action kinds
const (
	ActionAdd     ActionKind = "add"
	ActionDelete  ActionKind = "delete"
	ActionMove    ActionKind = "move"
	ActionReverse ActionKind = "reverse"
	ActionShuffle ActionKind = "shuffle"
)

// Action is one reversible edit. Only the fields its Kind needs are set:
//
//	add      Index, Song, and Replaced/ReplacedIndex for a KeepLatest eviction
//	delete   Index, Song
//	move     From, To
//	reverse  nothing
//	shuffle  Order (the arrangement before the shuffle)
type Action struct {
	Kind          ActionKind
	Index         int
	From          int
	To            int
	Song          *song.Song
	Replaced      *song.Song
	ReplacedIndex int
	Order         []*song.Song
}

// ActionLog is a bounded undo stack; when full, the oldest entry is dropped
type ActionLog struct {
	entries  []Action
	capacity int
}

// NewActionLog creates a log holding at most capacity entries
func NewActionLog(capacity int) (*ActionLog, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &ActionLog{capacity: capacity}, nil
}

// Push records an action, evicting the oldest if the log is full
func (a *ActionLog) Push(act Action) {
	if len(a.entries) == a.capacity {
		copy(a.entries, a.entries[1:])
		a.entries = a.entries[:len(a.entries)-1]
	}
	a.entries = append(a.entries, act)
}

// Pop removes and returns the newest action
func (a *ActionLog) Pop() (Action, bool) {
	if len(a.entries) == 0 {
		return Action{}, false
	}
	last := a.entries[len(a.entries)-1]
	a.entries[len(a.entries)-1] = Action{}
	a.entries = a.entries[:len(a.entries)-1]
	return last, true
}

// Kinds lists the logged kinds, oldest first
func (a *ActionLog) Kinds() []ActionKind {
	out := make([]ActionKind, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Kind
	}
	return out
}

// Len returns the number of logged actions
func (a *ActionLog) Len() int {
	return len(a.entries)
}

// Capacity returns the maximum number of logged actions
func (a *ActionLog) Capacity() int {
	return a.capacity
}

// Clear drops the whole history
func (a *ActionLog) Clear() {
	a.entries = nil
}

// SetCapacity changes the bound, keeping only the newest entries when shrinking
func (a *ActionLog) SetCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if len(a.entries) > capacity {
		a.entries = append([]Action(nil), a.entries[len(a.entries)-capacity:]...)
	}
	a.capacity = capacity
	return nil
}
