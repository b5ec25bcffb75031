package lookup

import (
	"fmt"

	"github.com/1mb-dev/playwise/internal/song"
)

// Policy decides what happens when a duplicate title and artist is added
type Policy string

const (
	// KeepFirst rejects the newcomer and keeps the first registration
	KeepFirst Policy = "first"
	// KeepLatest accepts the newcomer and retires the prior registration
	KeepLatest Policy = "latest"
)

// ParsePolicy validates a policy name
func ParsePolicy(s string) (Policy, error) {
	switch Policy(Normalize(s)) {
	case KeepFirst:
		return KeepFirst, nil
	case KeepLatest:
		return KeepLatest, nil
	}
	return "", fmt.Errorf("unknown dedupe policy %q", s)
}

// DuplicateCleaner tracks which song currently owns each normalized
// title+artist key.
type DuplicateCleaner struct {
	policy Policy
	byKey  map[string]*song.Song
}

// NewDuplicateCleaner creates a cleaner with the given policy
func NewDuplicateCleaner(policy Policy) *DuplicateCleaner {
	if policy == "" {
		policy = KeepFirst
	}
	return &DuplicateCleaner{
		policy: policy,
		byKey:  make(map[string]*song.Song),
	}
}

// Policy returns the configured policy
func (d *DuplicateCleaner) Policy() Policy {
	return d.policy
}

// Existing returns the song registered under the same key as s, if any
func (d *DuplicateCleaner) Existing(s *song.Song) (*song.Song, bool) {
	prev, ok := d.byKey[Key(s.Title, s.Artist)]
	return prev, ok
}

// IsDuplicate reports whether a song with this title and artist is registered
func (d *DuplicateCleaner) IsDuplicate(title, artist string) bool {
	_, ok := d.byKey[Key(title, artist)]
	return ok
}

// Register makes s the owner of its key
func (d *DuplicateCleaner) Register(s *song.Song) {
	d.byKey[Key(s.Title, s.Artist)] = s
}

// Deregister drops the key only if s still owns it
func (d *DuplicateCleaner) Deregister(s *song.Song) {
	key := Key(s.Title, s.Artist)
	if d.byKey[key] == s {
		delete(d.byKey, key)
	}
}

// Len returns the number of registered keys
func (d *DuplicateCleaner) Len() int {
	return len(d.byKey)
}
