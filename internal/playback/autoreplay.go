package playback

import (
	"slices"
	"strings"

	"github.com/1mb-dev/playwise/internal/song"
)

// autoReplayCount is how many calm songs are requeued
const autoReplayCount = 3

var calmGenres = map[string]bool{
	"lo-fi":   true,
	"lofi":    true,
	"jazz":    true,
	"chill":   true,
	"ambient": true,
}

// IsCalm reports whether genre counts as calm for auto-replay
func IsCalm(genre string) bool {
	return calmGenres[strings.ToLower(strings.TrimSpace(genre))]
}

// TopCalm returns up to k distinct calm songs by play count, highest
// first. Equal counts keep their order in songs.
func TopCalm(songs []*song.Song, k int) []*song.Song {
	seen := make(map[*song.Song]bool)
	var calm []*song.Song
	for _, s := range songs {
		if seen[s] || !IsCalm(s.Genre) {
			continue
		}
		seen[s] = true
		calm = append(calm, s)
	}
	slices.SortStableFunc(calm, func(a, b *song.Song) int {
		return b.PlayCount - a.PlayCount
	})
	if len(calm) > k {
		calm = calm[:k]
	}
	return calm
}

// autoReplay requeues the most played calm songs the first time the
// playlist drains. Songs without an id or recently skipped are left out.
func (c *Controller) autoReplay() {
	if c.autoReplayed {
		return
	}
	c.autoReplayed = true

	added := 0
	for _, s := range TopCalm(c.history.All(), autoReplayCount) {
		if s.ID == "" || c.skipped.IsRecentlySkipped(s.ID) {
			continue
		}
		if c.playlist.AddSong(s).OK() {
			added++
		}
	}
	c.logger.Debug().Int("songs", added).Msg("auto-replay")
}
