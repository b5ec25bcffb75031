package history

import (
	"github.com/1mb-dev/playwise/internal/playlist"
	"github.com/1mb-dev/playwise/internal/song"
)

// Target receives a song handed back by UndoLastPlay
type Target interface {
	AddSong(*song.Song) playlist.AddResult
}

type frame struct {
	song *song.Song
	next *frame
}

// PlaybackHistory is a stack of played songs, most recent on top
type PlaybackHistory struct {
	top  *frame
	size int
}

// NewPlaybackHistory creates an empty history
func NewPlaybackHistory() *PlaybackHistory {
	return &PlaybackHistory{}
}

// Record pushes a played song
func (h *PlaybackHistory) Record(s *song.Song) {
	h.top = &frame{song: s, next: h.top}
	h.size++
}

// Pop removes and returns the most recent song, or nil when empty
func (h *PlaybackHistory) Pop() *song.Song {
	if h.top == nil {
		return nil
	}
	s := h.top.song
	h.top = h.top.next
	h.size--
	return s
}

// Peek returns the most recent song without removing it
func (h *PlaybackHistory) Peek() *song.Song {
	if h.top == nil {
		return nil
	}
	return h.top.song
}

// All returns played songs, newest first
func (h *PlaybackHistory) All() []*song.Song {
	out := make([]*song.Song, 0, h.size)
	for f := h.top; f != nil; f = f.next {
		out = append(out, f.song)
	}
	return out
}

// Len returns the number of recorded plays
func (h *PlaybackHistory) Len() int {
	return h.size
}

// UndoLastPlay pops the most recent play and offers it back to target
// through the usual admission filters. It reports false when the history
// is empty.
func (h *PlaybackHistory) UndoLastPlay(target Target) bool {
	s := h.Pop()
	if s == nil {
		return false
	}
	target.AddSong(s)
	return true
}

// Clear forgets every play
func (h *PlaybackHistory) Clear() {
	h.top = nil
	h.size = 0
}
