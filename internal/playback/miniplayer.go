package playback

import (
	"errors"
	"slices"

	"github.com/1mb-dev/playwise/internal/song"
)

// DefaultPreviewWindow is the number of songs a MiniPlayer buffers
const DefaultPreviewWindow = 5

// ErrInvalidWindow is returned for a non-positive preload window
var ErrInvalidWindow = errors.New("window size must be positive")

// MiniPlayer steps through a queue while buffering only the next few
// songs. The buffer refills from the rest of the queue as songs play.
type MiniPlayer struct {
	window   int
	upcoming []*song.Song
	pending  []*song.Song
	played   []*song.Song
	current  *song.Song
}

// NewMiniPlayer creates an empty player with the given window
func NewMiniPlayer(window int) (*MiniPlayer, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	return &MiniPlayer{window: window}, nil
}

// Preload resets the player and queues songs
func (m *MiniPlayer) Preload(songs []*song.Song) {
	m.upcoming = m.upcoming[:0]
	m.pending = slices.Clone(songs)
	m.played = nil
	m.current = nil
	m.refill()
}

func (m *MiniPlayer) refill() {
	n := min(m.window-len(m.upcoming), len(m.pending))
	if n <= 0 {
		return
	}
	m.upcoming = append(m.upcoming, m.pending[:n]...)
	m.pending = m.pending[n:]
}

// PlayNext moves the current song to the played list and starts the next
// buffered one. It returns nil once the queue is exhausted.
func (m *MiniPlayer) PlayNext() *song.Song {
	if m.current != nil {
		m.played = append(m.played, m.current)
	}
	if len(m.upcoming) == 0 {
		m.current = nil
		return nil
	}
	m.current = m.upcoming[0]
	m.upcoming = m.upcoming[1:]
	m.refill()
	return m.current
}

// Upcoming returns the buffered songs, next first
func (m *MiniPlayer) Upcoming() []*song.Song {
	return slices.Clone(m.upcoming)
}

// Played returns finished songs in play order
func (m *MiniPlayer) Played() []*song.Song {
	return slices.Clone(m.played)
}

// Current returns the playing song, or nil
func (m *MiniPlayer) Current() *song.Song {
	return m.current
}

// IsFinished reports whether nothing is playing and nothing is left
func (m *MiniPlayer) IsFinished() bool {
	return m.current == nil && len(m.upcoming) == 0
}

// WindowSize returns the buffer size
func (m *MiniPlayer) WindowSize() int {
	return m.window
}

// SetWindowSize resizes the buffer. Shrinking keeps the nearest songs and
// returns the rest to the queue.
func (m *MiniPlayer) SetWindowSize(n int) error {
	if n <= 0 {
		return ErrInvalidWindow
	}
	if len(m.upcoming) > n {
		m.pending = append(slices.Clone(m.upcoming[n:]), m.pending...)
		m.upcoming = m.upcoming[:n]
	}
	m.window = n
	m.refill()
	return nil
}
