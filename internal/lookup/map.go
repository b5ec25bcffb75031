package lookup

import "github.com/1mb-dev/playwise/internal/song"

// Result describes how Map.Add treated a song
type Result struct {
	Accepted bool

	// ExistingID is the id of the song that caused a KeepFirst rejection.
	// It is empty when that song has no id.
	ExistingID string

	// Replaced is the song retired by a KeepLatest admission
	Replaced *song.Song
}

// Map indexes songs by id and by title, optionally deduplicating on
// normalized title+artist.
type Map struct {
	byID    map[string]*song.Song
	byTitle map[string]*song.Song
	dedupe  *DuplicateCleaner
}

// MapOption configures a Map
type MapOption func(*Map)

// WithPolicy enables deduplication with the given policy
func WithPolicy(p Policy) MapOption {
	return func(m *Map) { m.dedupe = NewDuplicateCleaner(p) }
}

// WithoutDedupe disables duplicate detection
func WithoutDedupe() MapOption {
	return func(m *Map) { m.dedupe = nil }
}

// NewMap creates a lookup map. Deduplication defaults to KeepFirst.
func NewMap(opts ...MapOption) *Map {
	m := &Map{
		byID:    make(map[string]*song.Song),
		byTitle: make(map[string]*song.Song),
		dedupe:  NewDuplicateCleaner(KeepFirst),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the dedupe policy, or "" when deduplication is off
func (m *Map) Policy() Policy {
	if m.dedupe == nil {
		return ""
	}
	return m.dedupe.Policy()
}

// Add registers s unless the dedupe policy rejects it. A song already
// registered is always rejected. A rejected add leaves the map unchanged.
func (m *Map) Add(s *song.Song) Result {
	var res Result
	if m.dedupe != nil {
		if prev, dup := m.dedupe.Existing(s); dup {
			if prev == s || m.dedupe.Policy() == KeepFirst {
				return Result{ExistingID: prev.ID}
			}
			m.RemoveSong(prev)
			res.Replaced = prev
		}
		m.dedupe.Register(s)
	}

	if s.ID != "" {
		m.byID[s.ID] = s
	}
	m.byTitle[s.Title] = s
	res.Accepted = true
	return res
}

// RemoveSong drops every index entry that still points at s
func (m *Map) RemoveSong(s *song.Song) bool {
	removed := false
	if s.ID != "" && m.byID[s.ID] == s {
		delete(m.byID, s.ID)
		removed = true
	}
	if m.byTitle[s.Title] == s {
		delete(m.byTitle, s.Title)
		removed = true
	}
	if m.dedupe != nil {
		m.dedupe.Deregister(s)
	}
	return removed
}

// Remove drops the song registered under id
func (m *Map) Remove(id string) bool {
	s, ok := m.byID[id]
	if !ok {
		return false
	}
	return m.RemoveSong(s)
}

// ByID returns the song registered under id
func (m *Map) ByID(id string) (*song.Song, bool) {
	s, ok := m.byID[id]
	return s, ok
}

// ByTitle returns the most recently added song with this exact title
func (m *Map) ByTitle(title string) (*song.Song, bool) {
	s, ok := m.byTitle[title]
	return s, ok
}

// Len returns the number of songs indexed by id
func (m *Map) Len() int {
	return len(m.byID)
}
