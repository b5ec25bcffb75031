package song

import (
	"errors"
	"fmt"
)

// ErrNegativeDuration is returned when a song is created with a negative duration.
var ErrNegativeDuration = errors.New("duration must not be negative")

// Song is a single track known to the engine.
// An empty ID means the song takes no part in id lookups or favorites.
type Song struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Duration  int    `json:"duration_seconds"`
	Genre     string `json:"genre,omitempty"`
	PlayCount int    `json:"play_count"`
}

// Option configures optional song fields
type Option func(*Song)

// WithID sets the externally assigned song id
func WithID(id string) Option {
	return func(s *Song) { s.ID = id }
}

// WithGenre sets the song genre
func WithGenre(genre string) Option {
	return func(s *Song) { s.Genre = genre }
}

// New creates a song with zero plays
func New(title, artist string, duration int, opts ...Option) (*Song, error) {
	if duration < 0 {
		return nil, fmt.Errorf("song %q: %w", title, ErrNegativeDuration)
	}
	s := &Song{Title: title, Artist: artist, Duration: duration}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IncrementPlayCount records one more play
func (s *Song) IncrementPlayCount() {
	s.PlayCount++
}

func (s *Song) String() string {
	return fmt.Sprintf("%s by %s [%ds]", s.Title, s.Artist, s.Duration)
}
