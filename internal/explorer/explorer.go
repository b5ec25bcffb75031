// Package explorer classifies songs in a genre > subgenre > mood > artist
// tree and answers category queries over it.
package explorer

import (
	"slices"

	"github.com/samber/lo"

	"github.com/1mb-dev/playwise/internal/cache"
	"github.com/1mb-dev/playwise/internal/lookup"
)

// Classification places a song in the tree. Empty levels are skipped,
// so a song without a subgenre hangs its mood directly under the genre.
type Classification struct {
	Genre    string
	Subgenre string
	Mood     string
	Artist   string
}

// Criteria selects a subtree. Fields apply top-down and matching stops at
// the first empty field.
type Criteria struct {
	Genre    string
	Subgenre string
	Mood     string
	Artist   string
}

// IsZero reports whether no field is set
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

func (c Criteria) levels() []string {
	out := make([]string, 0, 4)
	for _, f := range []string{c.Genre, c.Subgenre, c.Mood, c.Artist} {
		k := lookup.Normalize(f)
		if k == "" {
			break
		}
		out = append(out, k)
	}
	return out
}

func (c Classification) path() []string {
	var out []string
	for _, f := range []string{c.Genre, c.Subgenre, c.Mood, c.Artist} {
		if k := lookup.Normalize(f); k != "" {
			out = append(out, k)
		}
	}
	return out
}

type node struct {
	key      string
	children map[string]*node
	songs    map[string]struct{}
}

func newNode(key string) *node {
	return &node{
		key:      key,
		children: make(map[string]*node),
		songs:    make(map[string]struct{}),
	}
}

// childKeys returns child keys in sorted order
func (n *node) childKeys() []string {
	keys := lo.Keys(n.children)
	slices.Sort(keys)
	return keys
}

// Explorer is the classification tree
type Explorer struct {
	root    *node
	paths   map[string][][]string
	results *cache.Cache[[]string]
}

// New creates an empty explorer
func New() *Explorer {
	return &Explorer{
		root:    newNode(""),
		paths:   make(map[string][][]string),
		results: cache.New[[]string](),
	}
}

// Add files id under its classification. A song may be filed under
// several paths.
func (e *Explorer) Add(id string, c Classification) {
	path := c.path()
	n := e.root
	for _, key := range path {
		child, ok := n.children[key]
		if !ok {
			child = newNode(key)
			n.children[key] = child
		}
		n = child
	}
	n.songs[id] = struct{}{}
	e.paths[id] = append(e.paths[id], path)
	e.invalidate(path)
}

// Remove drops id from every path it was filed under
func (e *Explorer) Remove(id string) bool {
	paths, ok := e.paths[id]
	if !ok {
		return false
	}
	for _, path := range paths {
		if n := e.find(path); n != nil {
			delete(n.songs, id)
		}
		e.invalidate(path)
	}
	delete(e.paths, id)
	return true
}

// invalidate drops cached results that may cover path: every query under
// its top-level key plus whole-tree lookups. Other top-level keys keep
// their entries.
func (e *Explorer) invalidate(path []string) {
	if len(path) == 0 {
		e.results.Invalidate()
		return
	}
	e.results.InvalidatePrefix(cache.SearchKey(path[0]))
	e.results.InvalidatePrefix(cache.PathPrefix(path[0]))
	e.results.InvalidatePrefix(cache.PathKey(nil, true))
}

// Contains reports whether id is filed anywhere
func (e *Explorer) Contains(id string) bool {
	_, ok := e.paths[id]
	return ok
}

// Len returns the number of distinct songs filed
func (e *Explorer) Len() int {
	return len(e.paths)
}

// find walks normalized keys from the root
func (e *Explorer) find(path []string) *node {
	n := e.root
	for _, key := range path {
		child, ok := n.children[key]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Search returns the sorted ids in the subtree the criteria select.
// Zero criteria match nothing.
func (e *Explorer) Search(c Criteria) []string {
	if c.IsZero() {
		return nil
	}
	levels := c.levels()
	key := cache.SearchKey(levels...)
	if ids, ok := e.results.Get(key); ok {
		return slices.Clone(ids)
	}

	var ids []string
	if n := e.find(levels); n != nil {
		ids = collect(n, true)
	}
	e.results.Set(key, ids)
	return slices.Clone(ids)
}

// ByPath returns the sorted ids filed exactly at path, or in its whole
// subtree when subtree is set. Path keys are normalized.
func (e *Explorer) ByPath(path []string, subtree bool) []string {
	norm := lo.Map(path, func(k string, _ int) string { return lookup.Normalize(k) })
	key := cache.PathKey(norm, subtree)
	if ids, ok := e.results.Get(key); ok {
		return slices.Clone(ids)
	}

	var ids []string
	if n := e.find(norm); n != nil {
		ids = collect(n, subtree)
	}
	e.results.Set(key, ids)
	return slices.Clone(ids)
}

// collect gathers ids at n, and below it when deep is set
func collect(n *node, deep bool) []string {
	set := make(map[string]struct{})
	queue := []*node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for id := range cur.songs {
			set[id] = struct{}{}
		}
		if deep {
			for _, child := range cur.children {
				queue = append(queue, child)
			}
		}
	}
	ids := lo.Keys(set)
	slices.Sort(ids)
	return ids
}

// Genres returns the top-level keys, sorted
func (e *Explorer) Genres() []string {
	return e.root.childKeys()
}

// Stats reports search cache hits and misses
func (e *Explorer) Stats() map[string]any {
	return e.results.Stats()
}
