// Package favorites ranks favorite songs by cumulative listen time.
//
// Listen updates never search the heap. Each update pushes a fresh entry
// and the authoritative totals decide, at read time, which entries are
// still current. Stale entries are dropped as TopN meets them.
package favorites

import (
	"container/heap"
)

// Summary is one ranked favorite
type Summary struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Artist             string `json:"artist"`
	TotalListenSeconds int    `json:"total_listen_seconds"`
}

type member struct {
	title  string
	artist string
}

// entry is a possibly stale snapshot of a song's total
type entry struct {
	total int
	seq   uint64
	id    string
}

// entryHeap is a max-heap on total, later seq first on ties
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].total != h[j].total {
		return h[i].total > h[j].total
	}
	return h[i].seq > h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Queue is a lazy-deletion priority queue of favorites
type Queue struct {
	totals  map[string]int
	members map[string]member
	entries entryHeap
	seq     uint64
}

// New creates an empty queue
func New() *Queue {
	return &Queue{
		totals:  make(map[string]int),
		members: make(map[string]member),
	}
}

// Add marks id as a favorite. Repeated adds are no-ops and an existing
// listen total is kept.
func (q *Queue) Add(id, title, artist string) {
	if _, ok := q.members[id]; ok {
		return
	}
	q.members[id] = member{title: title, artist: artist}
	if _, ok := q.totals[id]; !ok {
		q.totals[id] = 0
	}
}

// Remove drops membership only. Heap entries for id go stale.
func (q *Queue) Remove(id string) {
	delete(q.members, id)
}

// IsFavorite reports whether id is currently a favorite
func (q *Queue) IsFavorite(id string) bool {
	_, ok := q.members[id]
	return ok
}

// RecordListen adds delta seconds to a favorite's total.
// Listens to songs that are not favorites are ignored.
func (q *Queue) RecordListen(id string, delta int) {
	if _, ok := q.members[id]; !ok {
		return
	}
	q.totals[id] += delta
	q.seq++
	heap.Push(&q.entries, entry{total: q.totals[id], seq: q.seq, id: id})
}

// Total returns the authoritative listen total for id
func (q *Queue) Total(id string) int {
	return q.totals[id]
}

// TopN returns up to n favorites ordered by listen total, highest first.
// Valid entries are pushed back so repeated reads agree; stale ones are
// discarded for good.
func (q *Queue) TopN(n int) []Summary {
	if n <= 0 {
		return nil
	}

	var (
		out  []Summary
		kept []entry
		seen = make(map[string]bool)
	)
	for len(out) < n && q.entries.Len() > 0 {
		e := heap.Pop(&q.entries).(entry)
		m, ok := q.members[e.id]
		if !ok || seen[e.id] || q.totals[e.id] != e.total {
			continue
		}
		seen[e.id] = true
		kept = append(kept, e)
		out = append(out, Summary{
			ID:                 e.id,
			Title:              m.title,
			Artist:             m.artist,
			TotalListenSeconds: e.total,
		})
	}
	for _, e := range kept {
		heap.Push(&q.entries, e)
	}
	return out
}

// Clear forgets every favorite, total and heap entry
func (q *Queue) Clear() {
	clear(q.totals)
	clear(q.members)
	q.entries = nil
}

// Len returns the number of favorites
func (q *Queue) Len() int {
	return len(q.members)
}

// HeapSize returns the number of heap entries, stale ones included
func (q *Queue) HeapSize() int {
	return q.entries.Len()
}
