package song

import "github.com/samber/lo"

// Registry gives every song id a single canonical *Song so that the
// playlist, history, favorites and recommender share play counts.
type Registry struct {
	byID map[string]*Song
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Song)}
}

// Put registers s and returns the canonical pointer for its id.
// The first registration of an id wins. Songs without an id are returned as-is.
func (r *Registry) Put(s *Song) *Song {
	if s == nil || s.ID == "" {
		return s
	}
	if existing, ok := r.byID[s.ID]; ok {
		return existing
	}
	r.byID[s.ID] = s
	return s
}

// Get returns the song registered under id
func (r *Registry) Get(id string) (*Song, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// IDs returns all registered ids in no particular order
func (r *Registry) IDs() []string {
	return lo.Keys(r.byID)
}

// Len returns the number of registered songs
func (r *Registry) Len() int {
	return len(r.byID)
}
