package playlist

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Blocklist holds artists whose songs are never admitted.
// Names match case-insensitively after trimming.
type Blocklist struct {
	artists map[string]struct{}
}

// NewBlocklist creates an empty blocklist
func NewBlocklist() *Blocklist {
	return &Blocklist{artists: make(map[string]struct{})}
}

func normalizeArtist(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

// Add blocks an artist
func (b *Blocklist) Add(artist string) {
	b.artists[normalizeArtist(artist)] = struct{}{}
}

// Remove unblocks an artist, reporting whether it was blocked
func (b *Blocklist) Remove(artist string) bool {
	key := normalizeArtist(artist)
	if _, ok := b.artists[key]; !ok {
		return false
	}
	delete(b.artists, key)
	return true
}

// IsBlocked reports whether the artist is blocked
func (b *Blocklist) IsBlocked(artist string) bool {
	_, ok := b.artists[normalizeArtist(artist)]
	return ok
}

// Artists returns the normalized blocked names, sorted
func (b *Blocklist) Artists() []string {
	out := lo.Keys(b.artists)
	sort.Strings(out)
	return out
}

// Len returns the number of blocked artists
func (b *Blocklist) Len() int {
	return len(b.artists)
}

// Clear unblocks everyone
func (b *Blocklist) Clear() {
	clear(b.artists)
}
